// Command mercury-mcp serves Mercury bank data to MCP hosts, either over
// streamable HTTP or on stdio.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/merctools/mercury-mcp/internal/app"
	"github.com/merctools/mercury-mcp/internal/config"
	"github.com/merctools/mercury-mcp/internal/observe"
	"github.com/merctools/mercury-mcp/internal/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "path to the YAML configuration file (optional)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.Name, app.Version)
		return 0
	}

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "mercury-mcp: config file %q not found, copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "mercury-mcp: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	// Logs go to stderr; in stdio mode stdout belongs to the MCP protocol.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Server.LogLevel.Slog(),
	}))
	slog.SetDefault(logger)

	slog.Info("mercury-mcp starting",
		"version", app.Version,
		"config", *configPath,
		"transport", cfg.Server.Transport,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	// Only the HTTP transport serves /metrics; stdio sessions keep the
	// default no-op providers.
	var telemetryShutdown func(context.Context) error
	if cfg.Server.Transport == config.TransportStreamableHTTP {
		telemetryShutdown, err = observe.InitProvider(ctx, observe.ProviderConfig{
			ServiceName:    app.Name,
			ServiceVersion: app.Version,
		})
		if err != nil {
			slog.Error("failed to initialise telemetry", "err", err)
			return 1
		}
	}

	// ── Application ───────────────────────────────────────────────────────────
	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		return 1
	}
	if telemetryShutdown != nil {
		application.OnShutdown(telemetryShutdown)
	}

	// ── Serve ─────────────────────────────────────────────────────────────────
	var runErr error
	switch cfg.Server.Transport {
	case config.TransportStdio:
		runErr = application.Run(ctx)
	default:
		srv := server.New(cfg.Server, server.Routes(application))
		slog.Info("server ready, press Ctrl+C to shut down", "addr", srv.Addr())
		runErr = srv.Run(ctx)
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		return 1
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		slog.Error("run error", "err", runErr)
		return 1
	}
	slog.Info("goodbye")
	return 0
}
