// Package server exposes the MCP service over streamable HTTP together
// with its operational surface: health probes and Prometheus metrics.
// Every route passes through the observe middleware, so each request is
// traced, measured and tagged with a correlation ID.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/merctools/mercury-mcp/internal/app"
	"github.com/merctools/mercury-mcp/internal/config"
	"github.com/merctools/mercury-mcp/internal/health"
	"github.com/merctools/mercury-mcp/internal/observe"
)

// shutdownTimeout bounds how long in-flight requests may keep running
// once the server has been asked to stop.
const shutdownTimeout = 10 * time.Second

// Routes assembles the full HTTP surface of the service:
//
//	/mcp      MCP streamable endpoint (POST for calls, GET for the event stream)
//	/healthz  liveness probe
//	/readyz   readiness probe
//	/metrics  Prometheus metrics
func Routes(application *app.App) http.Handler {
	mux := http.NewServeMux()

	// The streamable handler owns both verbs on /mcp, so the pattern must
	// not carry a method.
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return application.MCPServer()
	}, nil))

	health.New(application.Probes()...).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	return observe.Middleware(application.Metrics())(mux)
}

// Server wraps an [http.Server] with a lifecycle suited to MCP streaming:
// no write timeout, since SSE responses stay open for as long as the
// client listens, and a graceful drain on context cancellation.
type Server struct {
	http *http.Server
}

// New builds a server for handler listening on the host and port from cfg.
func New(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// for up to shutdownTimeout before returning. A clean drain reports nil.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen on %s: %w", s.http.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.Info("http server draining")
		if err := s.http.Shutdown(drainCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
