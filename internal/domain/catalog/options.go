package catalog

import "github.com/outrun/memeverse/internal/domain/project"

// SortKey selects the field a catalog is ordered by.
type SortKey string

const (
	SortCreatedAt      SortKey = "createdAt"
	SortGenesisEndTime SortKey = "genesisEndTime"
	SortUnlockTime     SortKey = "unlockTime"
	SortRaisedAmount   SortKey = "raisedAmount"
	SortPopulation     SortKey = "population"
	SortProgress       SortKey = "progress"
	SortMarketCap      SortKey = "marketCap"
	SortVolume         SortKey = "volume"
	SortStakingAPY     SortKey = "stakingAPY"
	SortTreasuryValue  SortKey = "treasuryValue"
)

// DefaultSortKey is used whenever the requested key is not offered.
const DefaultSortKey = SortCreatedAt

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Valid reports whether d is asc or desc.
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// SortOption is a sort key with its dropdown label.
type SortOption struct {
	Key   SortKey `json:"key"`
	Label string  `json:"label"`
}

var (
	genesisNormalOptions = []SortOption{
		{SortCreatedAt, "Creation Time"},
		{SortGenesisEndTime, "Genesis End Time"},
		{SortRaisedAmount, "Raised Amount"},
		{SortPopulation, "Population"},
		{SortProgress, "Progress"},
	}
	genesisFlashOptions = []SortOption{
		{SortCreatedAt, "Creation Time"},
		{SortGenesisEndTime, "Genesis End Time"},
		{SortRaisedAmount, "Raised Amount"},
		{SortProgress, "Progress"},
	}
	refundOptions = []SortOption{
		{SortCreatedAt, "Creation Time"},
		{SortRaisedAmount, "Raised Amount"},
		{SortPopulation, "Population"},
	}
	lockedOptions = []SortOption{
		{SortCreatedAt, "Creation Time"},
		{SortUnlockTime, "Unlock Time"},
		{SortMarketCap, "Market Cap"},
		{SortVolume, "24h Volume"},
		{SortStakingAPY, "Staking APY"},
		{SortTreasuryValue, "Treasury Value"},
		{SortPopulation, "Population"},
	}
	unlockedOptions = []SortOption{
		{SortCreatedAt, "Creation Time"},
		{SortMarketCap, "Market Cap"},
		{SortVolume, "24h Volume"},
		{SortStakingAPY, "Staking APY"},
		{SortTreasuryValue, "Treasury Value"},
		{SortPopulation, "Population"},
	}
)

// SortOptions returns the options offered for a stage. The mode only matters
// for Genesis. Unknown stages offer nothing.
func SortOptions(stage project.Stage, mode project.Mode) []SortOption {
	var opts []SortOption
	switch stage {
	case project.StageGenesis:
		opts = genesisNormalOptions
		if mode == project.ModeFlash {
			opts = genesisFlashOptions
		}
	case project.StageRefund:
		opts = refundOptions
	case project.StageLocked:
		opts = lockedOptions
	case project.StageUnlocked:
		opts = unlockedOptions
	}
	return append([]SortOption(nil), opts...)
}

// Offered reports whether key is a sort option for the stage and mode.
func Offered(stage project.Stage, mode project.Mode, key SortKey) bool {
	for _, opt := range SortOptions(stage, mode) {
		if opt.Key == key {
			return true
		}
	}
	return false
}
