// Package testserver runs the full HTTP stack against an in-memory database
// seeded with the embedded catalog.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/outrun/memeverse/internal/domain/project"
	"github.com/outrun/memeverse/internal/domain/session"
	"github.com/outrun/memeverse/internal/mcp"
	"github.com/outrun/memeverse/internal/seed"
	"github.com/outrun/memeverse/internal/sqlite"
	"github.com/outrun/memeverse/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Projects *project.Service
	Views    *session.Service
}

func New(t *testing.T) *TestServer {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	projectSvc := project.NewService(projectRepo, nil)
	viewSvc := session.NewService(sqlite.NewSessionRepository(db), projectSvc, nil)

	projects, err := seed.Load("")
	require.NoError(t, err)
	_, err = seed.Apply(ctx, projectRepo, projectSvc, projects, nil)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{Projects: projectSvc, Views: viewSvc},
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)

	server := httptest.NewServer(transport.NewServer(transport.Options{
		Views:    viewSvc,
		Projects: projectSvc,
		MCP:      mcpHandler,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Projects: projectSvc,
		Views:    viewSvc,
	}
}

// Connect opens an MCP client session over streamable HTTP.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}
