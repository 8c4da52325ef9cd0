package mercury

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned by every operation when the client holds no
// API token. The check runs before any network I/O so a misconfigured
// process never sends an unauthenticated request upstream.
var ErrMissingToken = errors.New("mercury: API token is not configured (set MERCURY_API_TOKEN)")

// APIError is a non-2xx response from the Mercury API. The response body is
// kept verbatim so callers can surface upstream diagnostics unchanged.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mercury: %s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
