package filterstate

import (
	"github.com/outrun/memeverse/internal/domain/catalog"
	"github.com/outrun/memeverse/internal/domain/project"
)

// Dropdown identifies which filter menu is open. At most one is open.
type Dropdown string

const (
	DropdownNone  Dropdown = ""
	DropdownChain Dropdown = "chain"
	DropdownStage Dropdown = "stage"
	DropdownSort  Dropdown = "sort"
)

// Valid reports whether d names a known dropdown.
func (d Dropdown) Valid() bool {
	switch d {
	case DropdownNone, DropdownChain, DropdownStage, DropdownSort:
		return true
	}
	return false
}

// State is the complete filter, sort and page selection of one catalog view.
type State struct {
	Chain          string            `json:"chain"`
	Stage          string            `json:"stage"`
	Search         string            `json:"search"`
	Mode           project.Mode      `json:"mode"`
	ListedOnly     bool              `json:"listed_only"`
	SortOption     catalog.SortKey   `json:"sort_option"`
	SortDirection  catalog.Direction `json:"sort_direction"`
	CurrentPage    int               `json:"current_page"`
	ThreeColumn    bool              `json:"three_column"`
	ActiveDropdown Dropdown          `json:"active_dropdown,omitempty"`
}

// Default returns the state a new view starts from.
func Default() State {
	return State{
		Chain:         catalog.AllChains,
		Stage:         project.StageGenesis.ID(),
		Mode:          project.ModeNormal,
		SortOption:    catalog.DefaultSortKey,
		SortDirection: catalog.Desc,
		CurrentPage:   1,
	}
}

// PageSize is the page size for the state's layout.
func (s State) PageSize() int {
	return catalog.PageSize(s.ThreeColumn)
}

// Query converts the state into a catalog query.
func (s State) Query() catalog.Query {
	return catalog.Query{
		Criteria: catalog.Criteria{
			Chain:      s.Chain,
			StageID:    s.Stage,
			Search:     s.Search,
			Mode:       s.Mode,
			ListedOnly: s.ListedOnly,
		},
		SortKey:   s.SortOption,
		Direction: s.SortDirection,
		Page:      s.CurrentPage,
		PageSize:  s.PageSize(),
	}
}

// SortOptions lists the sort options offered for the state's stage and mode.
func (s State) SortOptions() []catalog.SortOption {
	stage, _ := project.ParseStage(s.Stage)
	return catalog.SortOptions(stage, s.Mode)
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Chain         *string            `json:"chain,omitempty"`
	Stage         *string            `json:"stage,omitempty"`
	Search        *string            `json:"search,omitempty"`
	Mode          *project.Mode      `json:"mode,omitempty"`
	ListedOnly    *bool              `json:"listed_only,omitempty"`
	SortOption    *catalog.SortKey   `json:"sort_option,omitempty"`
	SortDirection *catalog.Direction `json:"sort_direction,omitempty"`
	CurrentPage   *int               `json:"current_page,omitempty"`
}

// touchesFilters reports whether the patch sets a field whose change sends
// the view back to the first page.
func (p Patch) touchesFilters() bool {
	return p.Chain != nil || p.Stage != nil || p.Search != nil || p.Mode != nil ||
		p.ListedOnly != nil || p.SortOption != nil || p.SortDirection != nil
}

func (p Patch) apply(s State) State {
	if p.Chain != nil {
		s.Chain = *p.Chain
	}
	if p.Stage != nil {
		s.Stage = *p.Stage
	}
	if p.Search != nil {
		s.Search = *p.Search
	}
	if p.Mode != nil {
		s.Mode = *p.Mode
	}
	if p.ListedOnly != nil {
		s.ListedOnly = *p.ListedOnly
	}
	if p.SortOption != nil {
		s.SortOption = *p.SortOption
	}
	if p.SortDirection != nil {
		s.SortDirection = *p.SortDirection
	}
	if p.CurrentPage != nil {
		s.CurrentPage = *p.CurrentPage
	} else if p.touchesFilters() {
		s.CurrentPage = 1
	}
	return s
}
