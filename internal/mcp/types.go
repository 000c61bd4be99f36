package mcp

import (
	"github.com/outrun/memeverse/internal/domain/catalog"
	"github.com/outrun/memeverse/internal/domain/project"
)

// ViewParams selects a view session.
type ViewParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"View session ID (omit to use the current MCP session)"`
}

// UpdateFiltersParams is a partial filter update; omitted fields are kept.
type UpdateFiltersParams struct {
	SessionID     string             `json:"session_id,omitempty" jsonschema:"View session ID (omit to use the current MCP session)"`
	Chain         *string            `json:"chain,omitempty" jsonschema:"Chain id, or all"`
	Stage         *string            `json:"stage,omitempty" jsonschema:"Stage id: genesis, refund, locked or unlocked"`
	Search        *string            `json:"search,omitempty" jsonschema:"Case-insensitive text matched against name, symbol and description"`
	Mode          *project.Mode      `json:"mode,omitempty" jsonschema:"Genesis mode: normal or flash"`
	ListedOnly    *bool              `json:"listed_only,omitempty" jsonschema:"Genesis only: keep projects listed on OutSwap"`
	SortOption    *catalog.SortKey   `json:"sort_option,omitempty" jsonschema:"Sort key, see list_sort_options"`
	SortDirection *catalog.Direction `json:"sort_direction,omitempty" jsonschema:"asc or desc"`
	CurrentPage   *int               `json:"current_page,omitempty" jsonschema:"Page to show after the update"`
}

// SetPageParams requests a page of the current view.
type SetPageParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"View session ID (omit to use the current MCP session)"`
	Page      int    `json:"page" jsonschema:"1-based page number"`
}

// InitializeFromURLParams carries a shared link's query string.
type InitializeFromURLParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"View session ID (omit to use the current MCP session)"`
	Query     string `json:"query" jsonschema:"URL query string with chain, stage, mode, sort, direction, search, page and listed"`
}

// SetViewportParams reports the client viewport width.
type SetViewportParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"View session ID (omit to use the current MCP session)"`
	Width     int    `json:"width" jsonschema:"Viewport width in logical pixels"`
}

// ToggleDropdownParams names the filter menu to open or close.
type ToggleDropdownParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"View session ID (omit to use the current MCP session)"`
	Dropdown  string `json:"dropdown" jsonschema:"chain, stage or sort"`
}

// GetProjectParams identifies a project.
type GetProjectParams struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

// CatalogSummaryParams takes no arguments.
type CatalogSummaryParams struct{}

// ListSortOptionsParams picks the stage, and mode for genesis, to list sort keys for.
type ListSortOptionsParams struct {
	Stage string `json:"stage" jsonschema:"Stage id: genesis, refund, locked or unlocked"`
	Mode  string `json:"mode,omitempty" jsonschema:"Genesis mode: normal or flash"`
}

// SortOptionsResponse lists the sort keys offered for a stage.
type SortOptionsResponse struct {
	Stage   string               `json:"stage"`
	Mode    string               `json:"mode,omitempty"`
	Options []catalog.SortOption `json:"options"`
}

// StatusResponse acknowledges a call that returns no view.
type StatusResponse struct {
	Status string `json:"status"`
}
