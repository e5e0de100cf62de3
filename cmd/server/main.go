package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sparkmate/amptrack/internal/config"
	"github.com/sparkmate/amptrack/internal/domain/material"
	"github.com/sparkmate/amptrack/internal/domain/project"
	"github.com/sparkmate/amptrack/internal/domain/timesheet"
	"github.com/sparkmate/amptrack/internal/mcp"
	"github.com/sparkmate/amptrack/internal/memory"
	"github.com/sparkmate/amptrack/internal/redis"
	"github.com/sparkmate/amptrack/internal/sqlite"
	"github.com/sparkmate/amptrack/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	store, cleanup, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open project store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	projectSvc := project.NewService(store, logger)
	materialSvc := material.NewService(store, logger)
	timesheetSvc := timesheet.NewService(store, logger)

	router := transport.NewRouter(transport.Services{
		Projects:  projectSvc,
		Materials: materialSvc,
		Timesheet: timesheetSvc,
	}, logger)

	if cfg.MCP.Enabled {
		mcpServer := mcp.NewServer(mcp.Config{
			Services: mcp.Services{
				Projects:  projectSvc,
				Materials: materialSvc,
				Timesheet: timesheetSvc,
			},
			Logger: logger,
		})
		mcpHandler := sdkmcp.NewStreamableHTTPHandler(
			func(r *http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{
				Stateless:      false,
				SessionTimeout: 30 * time.Minute,
			},
		)
		router.Handle("/mcp", mcpHandler)
		router.Handle("/mcp/*", mcpHandler)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "store", cfg.Store.Backend, "mcp", cfg.MCP.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// openStore builds the configured project store. The returned cleanup
// closes whatever the backend holds open and is safe to call once.
func openStore(cfg config.Config, logger *slog.Logger) (project.Store, func(), error) {
	switch cfg.Store.Backend {
	case "sqlite":
		if err := ensureDBDir(cfg.Store.Path); err != nil {
			return nil, nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewProjectStore(db), func() { db.Close() }, nil
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.New(), func() {}, nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr: cfg.Store.RedisAddr,
			DB:   cfg.Store.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return redis.New(client), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
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

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
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
