// Package observe provides application-wide observability primitives for the
// Mercury MCP server: OpenTelemetry metrics, distributed tracing, structured
// logging, and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all server metrics.
const meterName = "github.com/merctools/mercury-mcp"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use; the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Tool instruments ---

	// ToolCalls counts tool invocations. Use with attributes:
	//   attribute.String("tool", ...), attribute.String("status", ...)
	ToolCalls metric.Int64Counter

	// ToolDuration tracks tool execution latency, including the upstream
	// Mercury API round trip.
	ToolDuration metric.Float64Histogram

	// UpstreamErrors counts non-2xx Mercury API responses. Use with attributes:
	//   attribute.String("tool", ...), attribute.Int("status_code", ...)
	UpstreamErrors metric.Int64Counter

	// --- Upstream client ---

	// UpstreamRequests counts Mercury API round trips. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...),
	//   attribute.String("status", ...)
	UpstreamRequests metric.Int64Counter

	// UpstreamRequestDuration tracks Mercury API round-trip latency with the
	// same attributes as [Metrics.UpstreamRequests].
	UpstreamRequestDuration metric.Float64Histogram

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...), attribute.String("status", ...)
	HTTPRequestDuration metric.Float64Histogram

	// HTTPRequestsInFlight tracks the number of requests currently being
	// served.
	HTTPRequestsInFlight metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// calls that proxy a remote HTTP API.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Tool instruments.
	if met.ToolCalls, err = m.Int64Counter("mercurymcp.tool.calls",
		metric.WithDescription("Total tool invocations by tool name and status."),
	); err != nil {
		return nil, err
	}
	if met.ToolDuration, err = m.Float64Histogram("mercurymcp.tool.duration",
		metric.WithDescription("Latency of tool execution including the Mercury API round trip."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.UpstreamErrors, err = m.Int64Counter("mercurymcp.upstream.errors",
		metric.WithDescription("Total non-2xx Mercury API responses by tool and status code."),
	); err != nil {
		return nil, err
	}

	// Upstream client instruments.
	if met.UpstreamRequests, err = m.Int64Counter("mercurymcp.upstream.requests",
		metric.WithDescription("Total Mercury API round trips by method, path, and status."),
	); err != nil {
		return nil, err
	}
	if met.UpstreamRequestDuration, err = m.Float64Histogram("mercurymcp.upstream.request.duration",
		metric.WithDescription("Mercury API round-trip latency by method, path, and status."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// HTTP middleware instruments.
	if met.HTTPRequestDuration, err = m.Float64Histogram("mercurymcp.http.request.duration",
		metric.WithDescription("HTTP request latency by method, path, and status."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestsInFlight, err = m.Int64UpDownCounter("mercurymcp.http.requests_in_flight",
		metric.WithDescription("Number of HTTP requests currently being served."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordToolCall is a convenience method that records a tool call counter
// increment with the standard attribute set.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string) {
	m.ToolCalls.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("tool", tool),
			attribute.String("status", status),
		),
	)
}

// RecordToolDuration is a convenience method that records the execution time
// of one tool call in seconds.
func (m *Metrics) RecordToolDuration(ctx context.Context, tool string, seconds float64) {
	m.ToolDuration.Record(ctx, seconds,
		metric.WithAttributes(attribute.String("tool", tool)),
	)
}

// RecordUpstreamError is a convenience method that records one non-2xx
// response from the Mercury API.
func (m *Metrics) RecordUpstreamError(ctx context.Context, tool string, statusCode int) {
	m.UpstreamErrors.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("tool", tool),
			attribute.Int("status_code", statusCode),
		),
	)
}
