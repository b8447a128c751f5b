// Command plantd serves the batch-plant production feasibility tools over
// the Model Context Protocol.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/kmanditereza/industrial-ai-agent/internal/config"
	"github.com/kmanditereza/industrial-ai-agent/internal/mcp"
	"github.com/kmanditereza/industrial-ai-agent/internal/plant"
	"github.com/kmanditereza/industrial-ai-agent/internal/service/assessment"
	"github.com/kmanditereza/industrial-ai-agent/internal/storage"
	"github.com/kmanditereza/industrial-ai-agent/internal/telemetry"
	"github.com/kmanditereza/industrial-ai-agent/migrations"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run0())
}

func run0() int {
	level := slog.LevelInfo
	if os.Getenv("PLANT_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		slog.Error("fatal error", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, logger *slog.Logger) error {
	// Load .env file if present (non-fatal; production won't have one).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.Info("plantd starting", "version", version, "port", cfg.Port, "plant_endpoint", cfg.PlantEndpoint)

	otelShutdown, err := telemetry.Init(ctx, cfg.OTELEndpoint, cfg.ServiceName, version, cfg.OTELInsecure)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() { _ = otelShutdown(context.Background()) }()

	// Connect to the plant database.
	db, err := storage.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, migrations.FS); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	// Plant telemetry client and the assessment façade. The dialer opens
	// one session per query cycle; nothing is pooled or shared.
	dialer := plant.NewClient(cfg.PlantEndpoint, logger)
	points := plant.Points{
		TankNodes:    cfg.TankNodes,
		MachineNodes: cfg.MachineNodes,
	}
	if err := points.Validate(); err != nil {
		return err
	}
	svc := assessment.New(dialer, db, points, assessment.Timeouts{
		Dial:  cfg.DialTimeout,
		Read:  cfg.PlantReadTimeout,
		Query: cfg.QueryTimeout,
	}, logger)

	// MCP over streamable HTTP, plus a plain health endpoint.
	mcpSrv := mcp.New(svc, version, logger)
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv.MCPServer()))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	slog.Info("mcp server listening", "addr", httpServer.Addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("plantd shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
