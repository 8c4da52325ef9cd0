package observe

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestTransport_RecordsRoundTrip(t *testing.T) {
	m, reader := newTestMetrics(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	client := &http.Client{Transport: NewTransport(nil, m)}
	resp, err := client.Get(ts.URL + "/transactions")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()

	rm := collect(t, reader)
	met := findMetric(rm, "mercurymcp.upstream.requests")
	if met == nil {
		t.Fatal("metric not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("metric is not a sum")
	}
	if len(sum.DataPoints) != 1 {
		t.Fatalf("data points = %d, want 1", len(sum.DataPoints))
	}

	dp := sum.DataPoints[0]
	if dp.Value != 1 {
		t.Errorf("counter value = %d, want 1", dp.Value)
	}
	want := map[string]string{"method": "GET", "path": "/transactions", "status": "201"}
	for _, kv := range dp.Attributes.ToSlice() {
		if expected, ok := want[string(kv.Key)]; ok && kv.Value.AsString() != expected {
			t.Errorf("attribute %s = %q, want %q", kv.Key, kv.Value.AsString(), expected)
		}
	}

	dur := findMetric(rm, "mercurymcp.upstream.request.duration")
	if dur == nil {
		t.Fatal("duration metric not found")
	}
	hist, ok := dur.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("metric is not a histogram")
	}
	if len(hist.DataPoints) == 0 || hist.DataPoints[0].Count != 1 {
		t.Error("expected exactly one duration sample")
	}
}

func TestTransport_RecordsConnectionFailure(t *testing.T) {
	m, reader := newTestMetrics(t)

	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // the port now refuses connections

	client := &http.Client{Transport: NewTransport(nil, m)}
	if _, err := client.Get(ts.URL); err == nil {
		t.Fatal("expected a connection error")
	}

	rm := collect(t, reader)
	met := findMetric(rm, "mercurymcp.upstream.requests")
	if met == nil {
		t.Fatal("metric not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("metric is not a sum")
	}
	for _, dp := range sum.DataPoints {
		for _, kv := range dp.Attributes.ToSlice() {
			if string(kv.Key) == "status" && kv.Value.AsString() == "error" {
				if dp.Value != 1 {
					t.Errorf("counter value = %d, want 1", dp.Value)
				}
				return
			}
		}
	}
	t.Error("data point with status=error not found")
}
