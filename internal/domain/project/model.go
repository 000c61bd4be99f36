package project

import (
	"strings"
	"time"
)

// Stage is the lifecycle phase of a launch project.
type Stage string

const (
	StageGenesis  Stage = "Genesis"
	StageRefund   Stage = "Refund"
	StageLocked   Stage = "Locked"
	StageUnlocked Stage = "Unlocked"
)

// Stages lists every stage in display order.
var Stages = []Stage{StageGenesis, StageRefund, StageLocked, StageUnlocked}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageGenesis, StageRefund, StageLocked, StageUnlocked:
		return true
	}
	return false
}

// ID returns the lower-cased filter id for the stage ("genesis", "refund", ...).
func (s Stage) ID() string {
	return strings.ToLower(string(s))
}

// ParseStage maps a stage filter id back to its display stage.
func ParseStage(id string) (Stage, bool) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "genesis":
		return StageGenesis, true
	case "refund":
		return StageRefund, true
	case "locked":
		return StageLocked, true
	case "unlocked":
		return StageUnlocked, true
	}
	return "", false
}

// Mode is the Genesis-only sub-classification of a project.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeFlash  Mode = "flash"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeNormal || m == ModeFlash
}

// ParseMode parses a mode id, case-insensitively.
func ParseMode(v string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(v)))
	return m, m.Valid()
}

// VaultData holds staking information for Locked and Unlocked projects.
type VaultData struct {
	StakingAPY float64 `json:"staking_apy" yaml:"stakingAPY"`
}

// DAOData holds treasury information for Locked and Unlocked projects.
type DAOData struct {
	TreasuryValue float64 `json:"treasury_value" yaml:"treasuryValue"`
}

// Project is a Memeverse launch project. Projects are read-only once loaded.
type Project struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Symbol          string     `json:"symbol"`
	Description     string     `json:"description,omitempty"`
	Stage           Stage      `json:"stage"`
	Mode            Mode       `json:"mode"`
	Chain           string     `json:"chain"`
	ListedOnOutSwap bool       `json:"listed_on_outswap"`
	MarketCap       float64    `json:"market_cap"`
	RaisedAmount    float64    `json:"raised_amount"`
	Population      int64      `json:"population"`
	Progress        float64    `json:"progress"`
	CreatedAt       time.Time  `json:"created_at"`
	GenesisEndTime  time.Time  `json:"genesis_end_time"`
	UnlockTime      time.Time  `json:"unlock_time"`
	VaultData       *VaultData `json:"vault_data,omitempty"`
	DAOData         *DAOData   `json:"dao_data,omitempty"`
}

// Summary is the per-stage and per-chain breakdown of a catalog.
type Summary struct {
	Total   int            `json:"total"`
	ByStage map[string]int `json:"by_stage"`
	ByChain map[string]int `json:"by_chain"`
}
