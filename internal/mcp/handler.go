package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/outrun/memeverse/internal/domain/catalog"
	"github.com/outrun/memeverse/internal/domain/filterstate"
	"github.com/outrun/memeverse/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultViewID is the view used when neither the client nor the transport
// names a session.
const defaultViewID = "default"

// Handler implements the MCP tools on top of the domain services.
type Handler struct {
	projects ProjectService
	views    ViewService
}

// NewHandler creates a new MCP handler.
func NewHandler(projects ProjectService, views ViewService) *Handler {
	return &Handler{projects: projects, views: views}
}

func (h *Handler) GetCatalogView(ctx context.Context, _ *sdkmcp.CallToolRequest, in ViewParams) (*sdkmcp.CallToolResult, any, error) {
	view, err := h.views.View(ctx, viewID(ctx, in.SessionID))
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, view, nil
}

func (h *Handler) UpdateFilters(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateFiltersParams) (*sdkmcp.CallToolResult, any, error) {
	view, err := h.views.UpdateFilters(ctx, viewID(ctx, in.SessionID), filterstate.Patch{
		Chain:         in.Chain,
		Stage:         in.Stage,
		Search:        in.Search,
		Mode:          in.Mode,
		ListedOnly:    in.ListedOnly,
		SortOption:    in.SortOption,
		SortDirection: in.SortDirection,
		CurrentPage:   in.CurrentPage,
	})
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, view, nil
}

func (h *Handler) ToggleSortDirection(ctx context.Context, _ *sdkmcp.CallToolRequest, in ViewParams) (*sdkmcp.CallToolResult, any, error) {
	view, err := h.views.ToggleSortDirection(ctx, viewID(ctx, in.SessionID))
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, view, nil
}

func (h *Handler) SetPage(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetPageParams) (*sdkmcp.CallToolResult, any, error) {
	change, err := h.views.SetPage(ctx, viewID(ctx, in.SessionID), in.Page)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, change, nil
}

func (h *Handler) InitializeFromURL(ctx context.Context, _ *sdkmcp.CallToolRequest, in InitializeFromURLParams) (*sdkmcp.CallToolResult, any, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(in.Query, "?"))
	if err != nil {
		return nil, nil, &APIError{Code: "INVALID_QUERY", Message: err.Error(), RecoveryHint: "Pass a query string like chain=base&stage=locked"}
	}
	view, err := h.views.InitializeFromURL(ctx, viewID(ctx, in.SessionID), filterstate.ParseURLParams(values))
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, view, nil
}

func (h *Handler) SetViewport(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetViewportParams) (*sdkmcp.CallToolResult, any, error) {
	view, err := h.views.SetViewportWidth(ctx, viewID(ctx, in.SessionID), in.Width)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, view, nil
}

func (h *Handler) ToggleDropdown(ctx context.Context, _ *sdkmcp.CallToolRequest, in ToggleDropdownParams) (*sdkmcp.CallToolResult, any, error) {
	view, err := h.views.ToggleDropdown(ctx, viewID(ctx, in.SessionID), filterstate.Dropdown(strings.ToLower(in.Dropdown)))
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, view, nil
}

func (h *Handler) CloseView(ctx context.Context, _ *sdkmcp.CallToolRequest, in ViewParams) (*sdkmcp.CallToolResult, any, error) {
	if err := h.views.Close(ctx, viewID(ctx, in.SessionID)); err != nil {
		return nil, nil, mapError(err)
	}
	return nil, StatusResponse{Status: "closed"}, nil
}

func (h *Handler) GetProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, any, error) {
	proj, err := h.projects.Get(ctx, in.ID)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, proj, nil
}

func (h *Handler) CatalogSummary(ctx context.Context, _ *sdkmcp.CallToolRequest, _ CatalogSummaryParams) (*sdkmcp.CallToolResult, any, error) {
	sum, err := h.projects.Summarize(ctx)
	if err != nil {
		return nil, nil, mapError(err)
	}
	return nil, sum, nil
}

func (h *Handler) ListSortOptions(_ context.Context, _ *sdkmcp.CallToolRequest, in ListSortOptionsParams) (*sdkmcp.CallToolResult, any, error) {
	stage, ok := project.ParseStage(in.Stage)
	if !ok {
		return nil, nil, &APIError{Code: "INVALID_STAGE", Message: fmt.Sprintf("unknown stage %q", in.Stage), RecoveryHint: "Use genesis, refund, locked or unlocked"}
	}
	mode := project.ModeNormal
	if in.Mode != "" {
		if mode, ok = project.ParseMode(in.Mode); !ok {
			return nil, nil, &APIError{Code: "INVALID_MODE", Message: fmt.Sprintf("unknown mode %q", in.Mode), RecoveryHint: "Use normal or flash"}
		}
	}
	resp := SortOptionsResponse{Stage: stage.ID(), Options: catalog.SortOptions(stage, mode)}
	if stage == project.StageGenesis {
		resp.Mode = string(mode)
	}
	return nil, resp, nil
}

// viewID picks the explicit session id, then the transport session, then
// the shared default view.
func viewID(ctx context.Context, explicit string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	if id := getSessionID(ctx); id != "" {
		return id
	}
	return defaultViewID
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
