// Package serverless adapts API Gateway proxy events onto the HTTP surface
// of the service, so the same routes serve MCP from AWS Lambda without a
// second code path. Each invocation is one explicit dispatch: translate the
// event into an *http.Request, run it through the router, capture the
// response.
package serverless

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/aws/aws-lambda-go/events"

	"github.com/merctools/mercury-mcp/internal/app"
	"github.com/merctools/mercury-mcp/internal/server"
)

// defaultPath is assumed when an event arrives without a path, which
// happens with bare invocations from test consoles.
const defaultPath = "/mcp"

// Adapter bridges Lambda invocations to the service router.
type Adapter struct {
	handler http.Handler
}

// Option customises an [Adapter].
type Option func(*Adapter)

// WithHandler replaces the default route set with h.
func WithHandler(h http.Handler) Option {
	return func(a *Adapter) { a.handler = h }
}

// New builds an adapter serving the application's full HTTP surface,
// health and metrics endpoints included.
func New(application *app.App, opts ...Option) *Adapter {
	a := &Adapter{handler: server.Routes(application)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Invoke handles one proxy event and returns its response. The signature
// is what lambda.Start expects.
func (a *Adapter) Invoke(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := toRequest(ctx, ev)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("serverless: translate event: %w", err)
	}

	rec := newRecorder()
	a.handler.ServeHTTP(rec, req)

	slog.Debug("invocation dispatched",
		"method", req.Method,
		"path", req.URL.Path,
		"status", rec.status,
	)
	return rec.response(), nil
}

// toRequest translates a proxy event into a plain *http.Request.
func toRequest(ctx context.Context, ev events.APIGatewayProxyRequest) (*http.Request, error) {
	method := ev.HTTPMethod
	if method == "" {
		method = http.MethodPost
	}
	path := ev.Path
	if path == "" {
		path = defaultPath
	}

	body := []byte(ev.Body)
	if ev.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			return nil, fmt.Errorf("decode base64 body: %w", err)
		}
		body = decoded
	}

	u := url.URL{Path: path, RawQuery: rawQuery(ev)}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	// The multi-value map carries everything the single-value one does,
	// plus repeated keys; prefer it when the gateway sends both.
	if len(ev.MultiValueHeaders) > 0 {
		for key, values := range ev.MultiValueHeaders {
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	} else {
		for key, v := range ev.Headers {
			req.Header.Set(key, v)
		}
	}
	return req, nil
}

// rawQuery rebuilds the query string from the event, preferring the
// multi-value map for the same reason as headers.
func rawQuery(ev events.APIGatewayProxyRequest) string {
	q := url.Values{}
	if len(ev.MultiValueQueryStringParameters) > 0 {
		for key, values := range ev.MultiValueQueryStringParameters {
			for _, v := range values {
				q.Add(key, v)
			}
		}
	} else {
		for key, v := range ev.QueryStringParameters {
			q.Set(key, v)
		}
	}
	return q.Encode()
}

// recorder captures a handler's response for conversion into the proxy
// response shape.
type recorder struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

var (
	_ http.ResponseWriter = (*recorder)(nil)
	_ http.Flusher        = (*recorder)(nil)
)

func newRecorder() *recorder {
	return &recorder{header: make(http.Header), status: http.StatusOK}
}

func (r *recorder) Header() http.Header {
	return r.header
}

func (r *recorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.status = status
	r.wroteHeader = true
}

func (r *recorder) Write(p []byte) (int, error) {
	r.wroteHeader = true
	return r.body.Write(p)
}

// Flush is a no-op. Lambda buffers the whole response before returning it;
// the streamable handler only checks that the interface is present.
func (r *recorder) Flush() {}

// response converts the captured state into the proxy response shape. Both
// header maps are filled: single-value for older gateway configurations,
// multi-value for everything else.
func (r *recorder) response() events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(r.header))
	for key := range r.header {
		headers[key] = r.header.Get(key)
	}
	return events.APIGatewayProxyResponse{
		StatusCode:        r.status,
		Headers:           headers,
		MultiValueHeaders: r.header,
		Body:              r.body.String(),
	}
}
