package observe

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Transport is an [http.RoundTripper] that measures outbound requests: one
// counter increment and one duration sample per round trip, tagged with
// method, path and status. It is the outbound mirror of [Middleware].
type Transport struct {
	base http.RoundTripper
	m    *Metrics
}

var _ http.RoundTripper = (*Transport)(nil)

// NewTransport wraps base with upstream request instrumentation. A nil base
// falls back to [http.DefaultTransport], a nil m to [DefaultMetrics].
func NewTransport(base http.RoundTripper, m *Metrics) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if m == nil {
		m = DefaultMetrics()
	}
	return &Transport{base: base, m: m}
}

// RoundTrip implements [http.RoundTripper]. Transport-level failures are
// recorded with status "error" and returned unchanged.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	attrs := metric.WithAttributes(
		attribute.String("method", req.Method),
		attribute.String("path", req.URL.Path),
		attribute.String("status", status),
	)
	ctx := req.Context()
	t.m.UpstreamRequests.Add(ctx, 1, attrs)
	t.m.UpstreamRequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)

	return resp, err
}
