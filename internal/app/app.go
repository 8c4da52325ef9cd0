// Package app wires the Mercury MCP server subsystems into a running
// application.
//
// The App struct owns the full lifecycle: New creates and connects all
// subsystems, Run serves the MCP session over stdio, and Shutdown tears
// everything down in order. The streamable HTTP transport lives in
// internal/server and mounts on top of an App.
//
// For testing, inject doubles via functional options (WithClient,
// WithMetrics). When an option is not provided, New creates real
// implementations from the config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/merctools/mercury-mcp/internal/config"
	"github.com/merctools/mercury-mcp/internal/health"
	"github.com/merctools/mercury-mcp/internal/observe"
	"github.com/merctools/mercury-mcp/internal/tools"
	"github.com/merctools/mercury-mcp/pkg/mercury"
)

// Name is the server name announced to MCP clients during initialisation.
const Name = "mercury-mcp"

// Version is the server version announced to MCP clients.
const Version = "1.0.0"

// App owns all subsystem lifetimes.
type App struct {
	cfg *config.Config

	client  *mercury.Client
	toolbox *tools.Toolbox
	server  *mcp.Server
	metrics *observe.Metrics

	// closers are called in order during Shutdown.
	closers []func(context.Context) error

	// stopOnce guards the Shutdown path.
	stopOnce sync.Once
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithClient injects a Mercury API client instead of creating one from config.
func WithClient(c *mercury.Client) Option {
	return func(a *App) { a.client = c }
}

// WithMetrics injects a metrics instance instead of the package default.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// ─── New ─────────────────────────────────────────────────────────────────────

// New creates an App by wiring all subsystems together. Construction is
// deliberately split from serving: everything that can fail without touching
// the network fails here, before any transport accepts a request.
//
// A missing API token is not fatal at this stage. The token is checked again
// on every API call, so a server can come up, report itself unready, and
// start working the moment the credential appears in a redeploy.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg}
	for _, o := range opts {
		o(a)
	}
	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}

	// ── 1. Mercury API client ────────────────────────────────────────────
	if a.client == nil {
		a.client = mercury.New(cfg.Mercury.APIToken,
			mercury.WithBaseURL(cfg.Mercury.BaseURL),
			mercury.WithHTTPClient(&http.Client{
				Timeout:   cfg.Mercury.Timeout(),
				Transport: observe.NewTransport(nil, a.metrics),
			}),
		)
	}
	if !a.client.Authenticated() {
		slog.Warn("mercury API token is not configured, tool calls will fail",
			"env", "MERCURY_API_TOKEN")
	}

	// ── 2. Toolbox + MCP server ──────────────────────────────────────────
	a.toolbox = tools.New(a.client, tools.WithMetrics(a.metrics))
	a.server = mcp.NewServer(&mcp.Implementation{Name: Name, Version: Version}, nil)
	if err := a.toolbox.Register(a.server); err != nil {
		return nil, fmt.Errorf("app: build tool registry: %w", err)
	}

	return a, nil
}

// ─── Accessors ───────────────────────────────────────────────────────────────

// MCPServer returns the underlying MCP server with all tools registered.
func (a *App) MCPServer() *mcp.Server {
	return a.server
}

// Toolbox returns the tool catalogue.
func (a *App) Toolbox() *tools.Toolbox {
	return a.toolbox
}

// Config returns the configuration the app was built with.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Metrics returns the metrics instance shared by all subsystems.
func (a *App) Metrics() *observe.Metrics {
	return a.metrics
}

// Probes returns the readiness checkers for this application: the tool
// catalogue must be populated and an API token must be configured.
func (a *App) Probes() []health.Checker {
	return []health.Checker{
		{Name: "registry", Check: func(context.Context) error {
			if len(a.toolbox.Names()) == 0 {
				return tools.ErrNoTools
			}
			return nil
		}},
		{Name: "credentials", Check: func(context.Context) error {
			if !a.client.Authenticated() {
				return mercury.ErrMissingToken
			}
			return nil
		}},
	}
}

// ─── Run ─────────────────────────────────────────────────────────────────────

// Run serves the MCP session over stdio and blocks until the peer disconnects
// or ctx is cancelled. This is the transport for desktop MCP clients that
// spawn the server as a subprocess; internal/server carries the HTTP side.
func (a *App) Run(ctx context.Context) error {
	slog.Info("serving MCP over stdio", "tools", len(a.toolbox.Names()))
	return a.server.Run(ctx, &mcp.StdioTransport{})
}

// ─── Shutdown ────────────────────────────────────────────────────────────────

// OnShutdown registers fn to run during Shutdown, after previously registered
// closers.
func (a *App) OnShutdown(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

// Shutdown runs all registered closers in order. It respects the context
// deadline: if ctx expires before all closers finish, remaining closers are
// skipped and the context error is returned.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.stopOnce.Do(func() {
		slog.Info("shutting down", "closers", len(a.closers))

		for i, closer := range a.closers {
			select {
			case <-ctx.Done():
				slog.Warn("shutdown deadline exceeded", "remaining", len(a.closers)-i)
				shutdownErr = ctx.Err()
				return
			default:
			}
			if err := closer(ctx); err != nil {
				slog.Warn("closer error", "index", i, "err", err)
			}
		}

		slog.Info("shutdown complete")
	})
	return shutdownErr
}
