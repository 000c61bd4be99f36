package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/outrun/memeverse/internal/domain/catalog"
	"github.com/outrun/memeverse/internal/domain/filterstate"
	"github.com/outrun/memeverse/internal/domain/project"
	"github.com/outrun/memeverse/internal/domain/session"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type stubProjects struct {
	projects map[string]*project.Project
}

func (s *stubProjects) Get(_ context.Context, id string) (*project.Project, error) {
	if proj, ok := s.projects[id]; ok {
		return proj, nil
	}
	return nil, project.ErrProjectNotFound
}

func (s *stubProjects) Summarize(context.Context) (project.Summary, error) {
	return project.Summary{
		Total:   len(s.projects),
		ByStage: map[string]int{"genesis": len(s.projects), "refund": 0, "locked": 0, "unlocked": 0},
		ByChain: map[string]int{"base": len(s.projects)},
	}, nil
}

// stubViews records the last call and echoes a view built from the state it
// was given.
type stubViews struct {
	sessionID string
	patch     filterstate.Patch
	params    filterstate.URLParams
	page      int
	width     int
	dropdown  filterstate.Dropdown
	closed    bool
	err       error
}

func (s *stubViews) view(sessionID string, state filterstate.State) (*session.View, error) {
	s.sessionID = sessionID
	if s.err != nil {
		return nil, s.err
	}
	return &session.View{
		SessionID:   sessionID,
		State:       state,
		Result:      catalog.Result{Items: []project.Project{}, Page: state.CurrentPage, PageSize: state.PageSize()},
		SortOptions: state.SortOptions(),
		Query:       filterstate.EncodeURL(state).Encode(),
	}, nil
}

func (s *stubViews) View(_ context.Context, sessionID string) (*session.View, error) {
	return s.view(sessionID, filterstate.Default())
}

func (s *stubViews) UpdateFilters(_ context.Context, sessionID string, patch filterstate.Patch) (*session.View, error) {
	s.patch = patch
	return s.view(sessionID, filterstate.Default())
}

func (s *stubViews) ToggleSortDirection(_ context.Context, sessionID string) (*session.View, error) {
	st := filterstate.Default()
	st.SortDirection = catalog.Asc
	return s.view(sessionID, st)
}

func (s *stubViews) InitializeFromURL(_ context.Context, sessionID string, params filterstate.URLParams) (*session.View, error) {
	s.params = params
	return s.view(sessionID, params.State())
}

func (s *stubViews) SetPage(_ context.Context, sessionID string, page int) (*session.PageChange, error) {
	s.page = page
	view, err := s.view(sessionID, filterstate.Default())
	if err != nil {
		return nil, err
	}
	return &session.PageChange{Accepted: page == 1, View: *view}, nil
}

func (s *stubViews) SetViewportWidth(_ context.Context, sessionID string, width int) (*session.View, error) {
	s.width = width
	return s.view(sessionID, filterstate.Default())
}

func (s *stubViews) ToggleDropdown(_ context.Context, sessionID string, d filterstate.Dropdown) (*session.View, error) {
	s.dropdown = d
	if !d.Valid() {
		return nil, session.ErrInvalidInput
	}
	return s.view(sessionID, filterstate.Default())
}

func (s *stubViews) Close(_ context.Context, sessionID string) error {
	s.sessionID = sessionID
	s.closed = true
	return s.err
}

func connect(t *testing.T, projects ProjectService, views ViewService) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(Config{Services: Services{Projects: projects, Views: views}})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func callTool(t *testing.T, cs *sdkmcp.ClientSession, params *sdkmcp.CallToolParams) (string, bool) {
	t.Helper()
	if params.Arguments == nil {
		params.Arguments = map[string]any{}
	}
	res, err := cs.CallTool(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text, res.IsError
}

func TestServer_ListsToolsAndDocs(t *testing.T) {
	cs := connect(t, &stubProjects{}, &stubViews{})
	ctx := context.Background()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"get_catalog_view", "update_filters", "toggle_sort_direction", "set_page",
		"initialize_from_url", "set_viewport", "toggle_dropdown", "close_view",
		"get_project", "catalog_summary", "list_sort_options",
	}, names)

	resources, err := cs.ListResources(ctx, nil)
	require.NoError(t, err)
	require.Len(t, resources.Resources, len(docResources))

	read, err := cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "memeverse://docs/sorting"})
	require.NoError(t, err)
	require.Contains(t, read.Contents[0].Text, "stakingAPY")
}

func TestHandler_UpdateFiltersBuildsPatch(t *testing.T) {
	views := &stubViews{}
	cs := connect(t, &stubProjects{}, views)

	text, isErr := callTool(t, cs, &sdkmcp.CallToolParams{
		Name: "update_filters",
		Arguments: map[string]any{
			"session_id":  "view-1",
			"chain":       "base",
			"search":      "pepe",
			"mode":        "flash",
			"listed_only": true,
		},
	})
	require.False(t, isErr, text)
	require.Equal(t, "view-1", views.sessionID)
	require.Equal(t, "base", *views.patch.Chain)
	require.Equal(t, "pepe", *views.patch.Search)
	require.Equal(t, project.ModeFlash, *views.patch.Mode)
	require.True(t, *views.patch.ListedOnly)
	require.Nil(t, views.patch.Stage)
	require.Nil(t, views.patch.CurrentPage)

	var view session.View
	require.NoError(t, json.Unmarshal([]byte(text), &view))
	require.Equal(t, "view-1", view.SessionID)
}

func TestHandler_SessionResolution(t *testing.T) {
	views := &stubViews{}
	cs := connect(t, &stubProjects{}, views)

	_, isErr := callTool(t, cs, &sdkmcp.CallToolParams{Name: "get_catalog_view"})
	require.False(t, isErr)
	require.Equal(t, defaultViewID, views.sessionID)

	_, isErr = callTool(t, cs, &sdkmcp.CallToolParams{
		Name: "get_catalog_view",
		Meta: sdkmcp.Meta{"session_id": "from-meta"},
	})
	require.False(t, isErr)
	require.Equal(t, "from-meta", views.sessionID)

	_, isErr = callTool(t, cs, &sdkmcp.CallToolParams{
		Name:      "get_catalog_view",
		Meta:      sdkmcp.Meta{"session_id": "from-meta"},
		Arguments: map[string]any{"session_id": "explicit"},
	})
	require.False(t, isErr)
	require.Equal(t, "explicit", views.sessionID)
}

func TestHandler_InitializeFromURL(t *testing.T) {
	views := &stubViews{}
	cs := connect(t, &stubProjects{}, views)

	text, isErr := callTool(t, cs, &sdkmcp.CallToolParams{
		Name:      "initialize_from_url",
		Arguments: map[string]any{"query": "?chain=base&stage=locked&sort=marketCap&direction=asc&page=3"},
	})
	require.False(t, isErr, text)
	require.Equal(t, filterstate.URLParams{
		Chain:     "base",
		Stage:     "locked",
		Sort:      "marketCap",
		Direction: "asc",
		Page:      3,
	}, views.params)

	text, isErr = callTool(t, cs, &sdkmcp.CallToolParams{
		Name:      "initialize_from_url",
		Arguments: map[string]any{"query": "chain=%zz"},
	})
	require.True(t, isErr)
	require.Contains(t, text, "INVALID_QUERY")
}

func TestHandler_SetPageAndViewport(t *testing.T) {
	views := &stubViews{}
	cs := connect(t, &stubProjects{}, views)

	text, isErr := callTool(t, cs, &sdkmcp.CallToolParams{Name: "set_page", Arguments: map[string]any{"page": 4}})
	require.False(t, isErr, text)
	require.Equal(t, 4, views.page)
	var change session.PageChange
	require.NoError(t, json.Unmarshal([]byte(text), &change))
	require.False(t, change.Accepted)

	_, isErr = callTool(t, cs, &sdkmcp.CallToolParams{Name: "set_viewport", Arguments: map[string]any{"width": 1440}})
	require.False(t, isErr)
	require.Equal(t, 1440, views.width)
}

func TestHandler_ToggleDropdown(t *testing.T) {
	views := &stubViews{}
	cs := connect(t, &stubProjects{}, views)

	_, isErr := callTool(t, cs, &sdkmcp.CallToolParams{Name: "toggle_dropdown", Arguments: map[string]any{"dropdown": "Chain"}})
	require.False(t, isErr)
	require.Equal(t, filterstate.DropdownChain, views.dropdown)

	text, isErr := callTool(t, cs, &sdkmcp.CallToolParams{Name: "toggle_dropdown", Arguments: map[string]any{"dropdown": "wallet"}})
	require.True(t, isErr)
	require.Contains(t, text, "INVALID_INPUT")
}

func TestHandler_CloseView(t *testing.T) {
	views := &stubViews{}
	cs := connect(t, &stubProjects{}, views)

	text, isErr := callTool(t, cs, &sdkmcp.CallToolParams{Name: "close_view", Arguments: map[string]any{"session_id": "view-9"}})
	require.False(t, isErr, text)
	require.True(t, views.closed)
	require.Equal(t, "view-9", views.sessionID)
	require.JSONEq(t, `{"status":"closed"}`, text)

	views.err = session.ErrSessionNotFound
	text, isErr = callTool(t, cs, &sdkmcp.CallToolParams{Name: "close_view", Arguments: map[string]any{"session_id": "view-9"}})
	require.True(t, isErr)
	require.Contains(t, text, "SESSION_NOT_FOUND")
}

func TestHandler_Projects(t *testing.T) {
	projects := &stubProjects{projects: map[string]*project.Project{
		"mv-001": {ID: "mv-001", Name: "Pepe Vault", Stage: project.StageGenesis, Chain: "base"},
	}}
	cs := connect(t, projects, &stubViews{})

	text, isErr := callTool(t, cs, &sdkmcp.CallToolParams{Name: "get_project", Arguments: map[string]any{"id": "mv-001"}})
	require.False(t, isErr, text)
	var proj project.Project
	require.NoError(t, json.Unmarshal([]byte(text), &proj))
	require.Equal(t, "Pepe Vault", proj.Name)

	text, isErr = callTool(t, cs, &sdkmcp.CallToolParams{Name: "get_project", Arguments: map[string]any{"id": "missing"}})
	require.True(t, isErr)
	require.Contains(t, text, "PROJECT_NOT_FOUND")

	text, isErr = callTool(t, cs, &sdkmcp.CallToolParams{Name: "catalog_summary"})
	require.False(t, isErr, text)
	var sum project.Summary
	require.NoError(t, json.Unmarshal([]byte(text), &sum))
	require.Equal(t, 1, sum.Total)
	require.Equal(t, 1, sum.ByChain["base"])
}

func TestHandler_ListSortOptions(t *testing.T) {
	cs := connect(t, &stubProjects{}, &stubViews{})

	text, isErr := callTool(t, cs, &sdkmcp.CallToolParams{Name: "list_sort_options", Arguments: map[string]any{"stage": "locked"}})
	require.False(t, isErr, text)
	var resp SortOptionsResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	require.Equal(t, "locked", resp.Stage)
	require.Empty(t, resp.Mode)
	require.Equal(t, catalog.SortOptions(project.StageLocked, project.ModeNormal), resp.Options)

	text, isErr = callTool(t, cs, &sdkmcp.CallToolParams{Name: "list_sort_options", Arguments: map[string]any{"stage": "genesis", "mode": "flash"}})
	require.False(t, isErr, text)
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	require.Equal(t, "flash", resp.Mode)
	for _, opt := range resp.Options {
		require.NotEqual(t, catalog.SortPopulation, opt.Key)
	}

	text, isErr = callTool(t, cs, &sdkmcp.CallToolParams{Name: "list_sort_options", Arguments: map[string]any{"stage": "presale"}})
	require.True(t, isErr)
	require.Contains(t, text, "INVALID_STAGE")
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Equal(t, "PROJECT_NOT_FOUND", MapError(project.ErrProjectNotFound).Code)
	require.Equal(t, "SESSION_NOT_FOUND", MapError(session.ErrSessionNotFound).Code)
	require.Equal(t, "INVALID_INPUT", MapError(session.ErrInvalidInput).Code)
	require.Nil(t, MapError(context.Canceled))
}
