package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/outrun/memeverse/internal/config"
	"github.com/outrun/memeverse/internal/domain/project"
	"github.com/outrun/memeverse/internal/domain/session"
	"github.com/outrun/memeverse/internal/mcp"
	"github.com/outrun/memeverse/internal/seed"
	"github.com/outrun/memeverse/internal/sqlite"
	"github.com/outrun/memeverse/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "memeverse: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	projectRepo := sqlite.NewProjectRepository(db)
	projectSvc := project.NewService(projectRepo, logger)

	projects, err := seed.Load(cfg.Seed.Path)
	if err != nil {
		return err
	}
	if _, err := seed.Apply(ctx, projectRepo, projectSvc, projects, logger); err != nil {
		return err
	}

	viewSvc := session.NewService(sqlite.NewSessionRepository(db), projectSvc, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: projectSvc,
			Views:    viewSvc,
		},
		Version: version,
		Logger:  logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return viewSvc.RunSweeper(gctx, cfg.Sessions.SweepInterval, cfg.Sessions.IdleTimeout)
	})

	if cfg.Transport.Mode == config.TransportStdio {
		g.Go(func() error {
			// Stdin closing ends the process, sweeper included.
			defer cancel()
			return runStdioMode(gctx, logger, mcpServer)
		})
		return g.Wait()
	}

	router := transport.NewServer(transport.Options{
		Views:    viewSvc,
		Projects: projectSvc,
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: cfg.Sessions.IdleTimeout},
		),
		Logger: logger,
	})
	serveHTTP(gctx, g, logger, router, cfg.Server.Host, cfg.Server.Port)
	return g.Wait()
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or the context is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

// serveHTTP starts the HTTP server in g and shuts it down when ctx is done.
func serveHTTP(ctx context.Context, g *errgroup.Group, logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
