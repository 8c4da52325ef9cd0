// Package mercury implements a small client for the Mercury banking REST
// API (https://api.mercury.com).
//
// Every operation funnels through a single request helper that attaches the
// API token as an HTTP basic auth pair with the token as username and an
// empty password, which is the authentication convention Mercury uses.
// Responses are decoded as-is: unrecognized fields are ignored and missing
// optional fields keep their defaults. The client never retries; upstream
// failures are returned to the caller unchanged.
package mercury

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the production Mercury API endpoint.
const DefaultBaseURL = "https://api.mercury.com/api/v1"

const defaultTimeout = 30 * time.Second

// Client calls the Mercury API. It is safe for concurrent use; the only
// state it holds is read-only configuration and a shared http.Client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Useful for tests and sandbox
// environments. A trailing slash is trimmed.
func WithBaseURL(rawURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(rawURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request. It applies to the default HTTP client and
// to any client supplied via WithHTTPClient before this option.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New builds a Client for the given API token. The token may be empty, in
// which case every operation fails with ErrMissingToken at the point of use.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticated reports whether the client holds a non-empty API token.
// Readiness probes use this; the token itself is never exposed.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// do performs one authenticated request against baseURL + "/" + path and
// returns the raw JSON response. Non-2xx statuses become an *APIError with
// the body preserved.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	target := c.baseURL + "/" + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("mercury: encode %s %s body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("mercury: build %s %s request: %w", method, path, err)
	}
	req.SetBasicAuth(c.token, "")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mercury: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mercury: read %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(data)}
	}
	return json.RawMessage(data), nil
}

// Accounts lists every account of the Mercury organization. Count is
// computed from the decoded slice.
func (c *Client) Accounts(ctx context.Context) (*AccountsResult, error) {
	raw, err := c.do(ctx, http.MethodGet, "accounts", nil, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Accounts []Account `json:"accounts"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("mercury: decode accounts response: %w", err)
	}
	if payload.Accounts == nil {
		payload.Accounts = []Account{}
	}
	return &AccountsResult{Accounts: payload.Accounts, Count: len(payload.Accounts)}, nil
}

// Account fetches a single account by its identifier.
func (c *Client) Account(ctx context.Context, accountID string) (*Account, error) {
	raw, err := c.do(ctx, http.MethodGet, "accounts/"+url.PathEscape(accountID), nil, nil)
	if err != nil {
		return nil, err
	}
	var acct Account
	if err := json.Unmarshal(raw, &acct); err != nil {
		return nil, fmt.Errorf("mercury: decode account response: %w", err)
	}
	return &acct, nil
}

// Transactions lists transactions for one account. Limit and offset appear
// in the query string only when set in opts.
func (c *Client) Transactions(ctx context.Context, accountID string, opts ListOptions) (*TransactionsResult, error) {
	var query url.Values
	if opts.Limit != nil || opts.Offset != nil {
		query = url.Values{}
		if opts.Limit != nil {
			query.Set("limit", strconv.Itoa(*opts.Limit))
		}
		if opts.Offset != nil {
			query.Set("offset", strconv.Itoa(*opts.Offset))
		}
	}

	raw, err := c.do(ctx, http.MethodGet, "accounts/"+url.PathEscape(accountID)+"/transactions", query, nil)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Transactions []Transaction `json:"transactions"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("mercury: decode transactions response: %w", err)
	}
	if payload.Transactions == nil {
		payload.Transactions = []Transaction{}
	}
	return &TransactionsResult{Transactions: payload.Transactions, Count: len(payload.Transactions)}, nil
}

// paymentEntryPayload is the exact outgoing body for POST transactions.
// RequiresApproval has no omitempty so the field is always on the wire.
type paymentEntryPayload struct {
	AccountID        string  `json:"account_id"`
	Amount           float64 `json:"amount"`
	RequiresApproval bool    `json:"requires_approval"`
	CounterpartyID   string  `json:"counterparty_id,omitempty"`
	CounterpartyName string  `json:"counterparty_name,omitempty"`
	Memo             string  `json:"memo,omitempty"`
	ExternalID       string  `json:"external_id,omitempty"`
}

// CreatePaymentEntry posts a payment entry template for admin approval.
// The outgoing body unconditionally carries requires_approval=true. When
// both a counterparty id and name are given only the id is sent; empty
// memo/external_id are left out entirely.
func (c *Client) CreatePaymentEntry(ctx context.Context, in PaymentEntryInput) (*PaymentEntryResult, error) {
	payload := paymentEntryPayload{
		AccountID:        in.AccountID,
		Amount:           in.Amount,
		RequiresApproval: true,
		Memo:             in.Memo,
		ExternalID:       in.ExternalID,
	}
	if in.CounterpartyID != "" {
		payload.CounterpartyID = in.CounterpartyID
	} else if in.CounterpartyName != "" {
		payload.CounterpartyName = in.CounterpartyName
	}

	raw, err := c.do(ctx, http.MethodPost, "transactions", nil, payload)
	if err != nil {
		return nil, err
	}

	// Pre-set so a response that omits the field keeps the documented
	// default instead of flipping to false.
	entry := PaymentEntryTemplate{RequiresApproval: true}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("mercury: decode payment entry response: %w", err)
	}
	return &PaymentEntryResult{
		Success: true,
		Entry:   entry,
		Message: "Payment entry template created successfully and is pending admin approval",
	}, nil
}

// Counterparties returns the counterparties listing exactly as the API sent
// it, with no typed mapping applied.
func (c *Client) Counterparties(ctx context.Context) (map[string]any, error) {
	raw, err := c.do(ctx, http.MethodGet, "counterparties", nil, nil)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("mercury: decode counterparties response: %w", err)
	}
	return out, nil
}
