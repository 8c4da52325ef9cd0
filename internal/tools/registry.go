// Package tools implements the MCP tools exposed by the Mercury server.
//
// Every tool wraps exactly one Mercury API operation and returns the decoded
// API response as its structured content. The catalogue is fixed at
// construction time and registered in one shot; a Toolbox with nothing to
// register refuses to start instead of announcing an empty server.
package tools

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/merctools/mercury-mcp/internal/observe"
	"github.com/merctools/mercury-mcp/pkg/mercury"
)

// ErrNoTools is returned by [Toolbox.Register] when the catalogue is empty.
// A tool server without tools serves no purpose, so startup aborts instead
// of serving an empty catalogue.
var ErrNoTools = errors.New("tools: no tools to register")

// entry pairs a tool name with the closure that adds it to a server.
type entry struct {
	name string
	add  func(s *mcp.Server)
}

// Toolbox owns the Mercury API client and the fixed tool catalogue built on
// top of it. Construct one per server instead of sharing package-level state.
type Toolbox struct {
	client  *mercury.Client
	metrics *observe.Metrics
	entries []entry
}

// Option is a functional option for New.
type Option func(*Toolbox)

// WithMetrics injects a metrics instance instead of the package default.
// Tests use this to avoid polluting the global meter provider.
func WithMetrics(m *observe.Metrics) Option {
	return func(tb *Toolbox) { tb.metrics = m }
}

// New builds the full tool catalogue around client. The catalogue order is
// fixed; [Toolbox.Register] adds tools in exactly this order.
func New(client *mercury.Client, opts ...Option) *Toolbox {
	tb := &Toolbox{client: client}
	for _, o := range opts {
		o(tb)
	}
	if tb.metrics == nil {
		tb.metrics = observe.DefaultMetrics()
	}

	tb.entries = []entry{
		{name: "get_accounts", add: func(s *mcp.Server) {
			mcp.AddTool(s, &mcp.Tool{
				Name:        "get_accounts",
				Description: "Get all accounts associated with the Mercury account",
			}, tb.getAccounts)
		}},
		{name: "get_account", add: func(s *mcp.Server) {
			mcp.AddTool(s, &mcp.Tool{
				Name:        "get_account",
				Description: "Get a specific account by ID",
			}, tb.getAccount)
		}},
		{name: "get_transactions", add: func(s *mcp.Server) {
			mcp.AddTool(s, &mcp.Tool{
				Name:        "get_transactions",
				Description: "Get transactions for a specific account",
			}, tb.getTransactions)
		}},
		{name: "create_payment_entry_template", add: func(s *mcp.Server) {
			mcp.AddTool(s, &mcp.Tool{
				Name:        "create_payment_entry_template",
				Description: "Create a payment entry template that requires admin approval",
			}, tb.createPaymentEntry)
		}},
		{name: "get_counterparties", add: func(s *mcp.Server) {
			mcp.AddTool(s, &mcp.Tool{
				Name:        "get_counterparties",
				Description: "Get all counterparties associated with the account",
			}, tb.getCounterparties)
		}},
	}
	return tb
}

// Register adds every catalogued tool to s in order. It returns [ErrNoTools]
// when there is nothing to add.
func (tb *Toolbox) Register(s *mcp.Server) error {
	if len(tb.entries) == 0 {
		return ErrNoTools
	}
	for _, e := range tb.entries {
		e.add(s)
	}
	slog.Info("registered tools", "count", len(tb.entries), "tools", tb.Names())
	return nil
}

// Names returns the tool names in catalogue order.
func (tb *Toolbox) Names() []string {
	names := make([]string, len(tb.entries))
	for i, e := range tb.entries {
		names[i] = e.name
	}
	return names
}

// outcome maps an error to the status label used in logs and metrics.
func outcome(err error) string {
	var apiErr *mercury.APIError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, mercury.ErrMissingToken):
		return "config_error"
	case errors.As(err, &apiErr):
		return "upstream_error"
	default:
		return "error"
	}
}

// record emits the log line and metrics for one finished tool call.
func (tb *Toolbox) record(ctx context.Context, tool string, start time.Time, err error) {
	status := outcome(err)
	elapsed := time.Since(start)

	tb.metrics.RecordToolCall(ctx, tool, status)
	tb.metrics.RecordToolDuration(ctx, tool, elapsed.Seconds())
	var apiErr *mercury.APIError
	if errors.As(err, &apiErr) {
		tb.metrics.RecordUpstreamError(ctx, tool, apiErr.StatusCode)
	}

	log := observe.Logger(ctx)
	if err != nil {
		log.Error("tool call failed", "tool", tool, "status", status, "duration", elapsed, "err", err)
		return
	}
	log.Info("tool call finished", "tool", tool, "duration", elapsed)
}
