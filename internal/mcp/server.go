package mcp

import (
	"context"
	"log/slog"

	"github.com/outrun/memeverse/internal/domain/filterstate"
	"github.com/outrun/memeverse/internal/domain/project"
	"github.com/outrun/memeverse/internal/domain/session"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	Summarize(ctx context.Context) (project.Summary, error)
}

// ViewService defines catalog view operations needed by MCP.
type ViewService interface {
	View(ctx context.Context, sessionID string) (*session.View, error)
	UpdateFilters(ctx context.Context, sessionID string, patch filterstate.Patch) (*session.View, error)
	ToggleSortDirection(ctx context.Context, sessionID string) (*session.View, error)
	InitializeFromURL(ctx context.Context, sessionID string, params filterstate.URLParams) (*session.View, error)
	SetPage(ctx context.Context, sessionID string, page int) (*session.PageChange, error)
	SetViewportWidth(ctx context.Context, sessionID string, width int) (*session.View, error)
	ToggleDropdown(ctx context.Context, sessionID string, d filterstate.Dropdown) (*session.View, error)
	Close(ctx context.Context, sessionID string) error
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Views    ViewService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "memeverse",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Services.Projects, cfg.Services.Views))

	return server
}

func registerTools(server *sdkmcp.Server, h *Handler) {
	// Views
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_catalog_view",
		Description: "Render the current catalog page for a view session",
	}, h.GetCatalogView)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_filters",
		Description: "Change chain, stage, search, mode, listed, sort option or sort direction; returns to page 1 unless current_page is given",
	}, h.UpdateFilters)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_sort_direction",
		Description: "Flip the sort direction between asc and desc and return to page 1",
	}, h.ToggleSortDirection)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_page",
		Description: "Move to a page; pages outside 1..total_pages are ignored",
	}, h.SetPage)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "initialize_from_url",
		Description: "Replace the whole view state from a URL query string such as chain=base&stage=locked&page=2",
	}, h.InitializeFromURL)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_viewport",
		Description: "Report the viewport width; 1320px and wider shows 15 projects per page instead of 10",
	}, h.SetViewport)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_dropdown",
		Description: "Open or close the chain, stage or sort menu; opening one closes the others",
	}, h.ToggleDropdown)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_view",
		Description: "Discard a view session",
	}, h.CloseView)

	// Catalog
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a launch project by ID",
	}, h.GetProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "catalog_summary",
		Description: "Count projects per stage and per chain",
	}, h.CatalogSummary)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_sort_options",
		Description: "List the sort options offered for a stage (and mode, for genesis)",
	}, h.ListSortOptions)
}
