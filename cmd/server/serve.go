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
	"syscall"
	"time"

	"github.com/okfy/leadboard/internal/board"
	"github.com/okfy/leadboard/internal/config"
	"github.com/okfy/leadboard/internal/domain/assignee"
	"github.com/okfy/leadboard/internal/domain/lead"
	"github.com/okfy/leadboard/internal/domain/pipeline"
	"github.com/okfy/leadboard/internal/domain/preference"
	"github.com/okfy/leadboard/internal/generator"
	"github.com/okfy/leadboard/internal/mcp"
	"github.com/okfy/leadboard/internal/memory"
	"github.com/okfy/leadboard/internal/sqlite"
	"github.com/okfy/leadboard/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio or HTTP, per LEADBOARD_TRANSPORT)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("preparing database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		return err
	}

	b, people := newBoard(cfg, db, logger)
	if err := b.Start(ctx); err != nil {
		return fmt.Errorf("starting board: %w", err)
	}

	server := mcp.NewServer(mcp.Config{
		Board:     b,
		Assignees: people,
		Version:   version,
		Logger:    logger,
	})

	if cfg.Transport.Mode == config.TransportStdio {
		return runStdio(ctx, logger, server)
	}
	return runHTTP(ctx, logger, server, cfg.Server.Host, cfg.Server.Port)
}

// newBoard wires the services behind the board. Leads and pipelines live in
// memory for the lifetime of the process; preferences persist in db.
func newBoard(cfg config.Config, db *sqlite.DB, logger *slog.Logger) (*board.Board, *assignee.StaticDirectory) {
	people := assignee.NewStaticDirectory(cfg.Assignees...)

	pipelines := pipeline.NewService(memory.NewPipelineRepository(cfg.Pipelines...), logger)
	leads := lead.NewService(memory.NewLeadRepository(), pipelines, logger, lead.WithAssignees(people))
	prefs := preference.NewService(sqlite.NewPreferenceRepository(db), logger)

	gemini := generator.NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
	if !gemini.Configured() {
		logger.Warn("no Gemini API key configured; pipeline generation will fail")
	}

	return board.New(leads, pipelines, prefs, gemini, logger), people
}

func runStdio(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or ctx is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTP(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server, host string, port int) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: transport.NewRouter(mcpHandler, logger),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newLogger writes to stderr in stdio mode so stdout stays clean for
// JSON-RPC, or to cfg.Log.Path when set.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.TransportStdio {
		logWriter = os.Stderr
	}
	closeLog := func() {}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("log file error: %w", err)
		}
		logWriter = fileWriter
		closeLog = func() { _ = fileWriter.Close() }
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	return logger, closeLog, nil
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
