package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/outrun/memeverse/internal/domain/filterstate"
	"github.com/outrun/memeverse/internal/domain/project"
	"github.com/outrun/memeverse/internal/domain/session"
)

// ViewService opens catalog views from URL parameters.
type ViewService interface {
	InitializeFromURL(ctx context.Context, sessionID string, params filterstate.URLParams) (*session.View, error)
}

// ProjectService reads single projects and catalog totals.
type ProjectService interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	Summarize(ctx context.Context) (project.Summary, error)
}

// Options configures the HTTP router. MCP may be nil when only the REST
// endpoints are served.
type Options struct {
	Views    ViewService
	Projects ProjectService
	MCP      http.Handler
	Logger   *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	views    ViewService
	projects ProjectService
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(SessionMiddleware)

	srv := &Server{views: opts.Views, projects: opts.Projects, logger: logger}

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}
	r.Get("/health", srv.handleHealth)
	r.Get("/catalog", srv.handleCatalog)
	r.Get("/catalog/summary", srv.handleSummary)
	r.Get("/projects/{id}", srv.handleProject)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleCatalog opens the view described by the query string. Without a
// session a new view is created; its id comes back in session_id.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := SessionIDFromContext(r.Context())
	params := filterstate.ParseURLParams(r.URL.Query())

	view, err := s.views.InitializeFromURL(r.Context(), sessionID, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Mcp-Session-Id", view.SessionID)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.projects.Summarize(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}
