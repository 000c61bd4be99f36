package catalog

import (
	"cmp"
	"slices"

	"github.com/outrun/memeverse/internal/domain/project"
)

// accessors maps each sort key to the value it orders by. Time fields
// compare by unix milliseconds. volume reads the market cap.
var accessors = map[SortKey]func(project.Project) float64{
	SortCreatedAt:      func(p project.Project) float64 { return float64(p.CreatedAt.UnixMilli()) },
	SortGenesisEndTime: func(p project.Project) float64 { return float64(p.GenesisEndTime.UnixMilli()) },
	SortUnlockTime:     func(p project.Project) float64 { return float64(p.UnlockTime.UnixMilli()) },
	SortRaisedAmount:   func(p project.Project) float64 { return p.RaisedAmount },
	SortPopulation:     func(p project.Project) float64 { return float64(p.Population) },
	SortProgress:       func(p project.Project) float64 { return p.Progress },
	SortMarketCap:      func(p project.Project) float64 { return p.MarketCap },
	SortVolume:         func(p project.Project) float64 { return p.MarketCap },
	SortStakingAPY: func(p project.Project) float64 {
		if p.VaultData == nil {
			return 0
		}
		return p.VaultData.StakingAPY
	},
	SortTreasuryValue: func(p project.Project) float64 {
		if p.DAOData == nil {
			return 0
		}
		return p.DAOData.TreasuryValue
	},
}

// Known reports whether key has a field accessor.
func Known(key SortKey) bool {
	_, ok := accessors[key]
	return ok
}

// Compare orders a before b (negative), after b (positive) or neither (zero)
// for the given key and direction. Unknown keys compare equal.
func Compare(a, b project.Project, key SortKey, dir Direction) int {
	get, ok := accessors[key]
	if !ok {
		return 0
	}
	if dir == Asc {
		return cmp.Compare(get(a), get(b))
	}
	return cmp.Compare(get(b), get(a))
}

// Sort returns a stably sorted copy of projects. Ties keep their input order.
func Sort(projects []project.Project, key SortKey, dir Direction) []project.Project {
	out := slices.Clone(projects)
	if !Known(key) {
		return out
	}
	slices.SortStableFunc(out, func(a, b project.Project) int {
		return Compare(a, b, key, dir)
	})
	return out
}
