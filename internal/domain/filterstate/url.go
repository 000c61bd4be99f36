package filterstate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/outrun/memeverse/internal/domain/catalog"
	"github.com/outrun/memeverse/internal/domain/project"
)

// URL query keys.
const (
	paramChain     = "chain"
	paramStage     = "stage"
	paramMode      = "mode"
	paramSort      = "sort"
	paramDirection = "direction"
	paramSearch    = "search"
	paramPage      = "page"
	paramListed    = "listed"
)

// URLParams is the filter state as carried in a page URL.
type URLParams struct {
	Chain     string `json:"chain,omitempty"`
	Stage     string `json:"stage,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Sort      string `json:"sort,omitempty"`
	Direction string `json:"direction,omitempty"`
	Search    string `json:"search,omitempty"`
	Page      int    `json:"page,omitempty"`
	Listed    bool   `json:"listed,omitempty"`
}

// ParseURLParams reads URLParams from a query string. Malformed page or
// listed values are ignored.
func ParseURLParams(values url.Values) URLParams {
	p := URLParams{
		Chain:     values.Get(paramChain),
		Stage:     values.Get(paramStage),
		Mode:      values.Get(paramMode),
		Sort:      values.Get(paramSort),
		Direction: strings.ToLower(values.Get(paramDirection)),
		Search:    values.Get(paramSearch),
	}
	if page, err := strconv.Atoi(values.Get(paramPage)); err == nil {
		p.Page = page
	}
	if listed, err := strconv.ParseBool(values.Get(paramListed)); err == nil {
		p.Listed = listed
	}
	return p
}

// State builds a full state from the params, using defaults for empty fields.
// The result is not yet normalized.
func (p URLParams) State() State {
	s := Default()
	if p.Chain != "" {
		s.Chain = p.Chain
	}
	if p.Stage != "" {
		s.Stage = p.Stage
	}
	if p.Mode != "" {
		s.Mode = project.Mode(p.Mode)
	}
	if p.Sort != "" {
		s.SortOption = catalog.SortKey(p.Sort)
	}
	if p.Direction != "" {
		s.SortDirection = catalog.Direction(p.Direction)
	}
	s.Search = p.Search
	s.ListedOnly = p.Listed
	if p.Page > 0 {
		s.CurrentPage = p.Page
	}
	return s
}

// EncodeURL writes the state as query values, omitting fields left at their
// defaults.
func EncodeURL(s State) url.Values {
	def := Default()
	values := url.Values{}
	if s.Chain != def.Chain {
		values.Set(paramChain, s.Chain)
	}
	if s.Stage != def.Stage {
		values.Set(paramStage, s.Stage)
	}
	if s.Mode != def.Mode {
		values.Set(paramMode, string(s.Mode))
	}
	if s.SortOption != def.SortOption {
		values.Set(paramSort, string(s.SortOption))
	}
	if s.SortDirection != def.SortDirection {
		values.Set(paramDirection, string(s.SortDirection))
	}
	if s.Search != "" {
		values.Set(paramSearch, s.Search)
	}
	if s.ListedOnly {
		values.Set(paramListed, "true")
	}
	if s.CurrentPage > 1 {
		values.Set(paramPage, strconv.Itoa(s.CurrentPage))
	}
	return values
}
