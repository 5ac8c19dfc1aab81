// Package api implements the REST client for the Dishcovery backend.
//
// All methods translate transport and protocol failures into the shared
// sentinel errors in internal/common: a request that never got a response
// maps to ErrUnavailable, a response with the wrong shape or content type
// maps to ErrInvalidServerResponse, and auth rejections map to
// ErrInvalidCredentials or ErrUnauthenticated depending on the endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dishcovery/dishcovery/internal/common"
	"github.com/dishcovery/dishcovery/internal/logging"
)

// ClientIDHeader carries the persisted installation ID on every request.
const ClientIDHeader = "X-Client-Id"

// Client talks to one Dishcovery backend origin. It holds no connection
// state beyond the underlying http.Client's pool and is safe to share.
type Client struct {
	baseURL  string
	http     *http.Client
	token    func() string
	clientID func() string
	log      logging.Logger
}

type Option func(*Client)

// WithTokenSource sets the callback that supplies the current bearer
// token. An empty return means "no session" and the header is omitted.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

// WithClientID sets the callback that supplies the installation ID.
func WithClientID(fn func() string) Option {
	return func(c *Client) { c.clientID = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHTTPClient replaces the underlying http.Client. Mostly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client for the given origin. The timeout bounds every
// request end to end; on expiry the call fails as unavailable.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.clientID != nil {
		if id := c.clientID(); id != "" {
			req.Header.Set(ClientIDHeader, id)
		}
	}
	return req, nil
}

// newJSONRequest marshals body (when non-nil) and sets the JSON content
// type. With authed, the bearer header is attached from the token source.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, body any, authed bool) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if err := c.authorize(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (c *Client) authorize(req *http.Request) error {
	if c.token == nil {
		return common.ErrUnauthenticated
	}
	token := c.token()
	if token == "" {
		return common.ErrUnauthenticated
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// do executes the request. A transport-level failure (connection refused,
// timeout, DNS) never carries a response and maps to ErrUnavailable.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.Warn(req.Context(), "request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	return resp, nil
}

// decodeJSON reads a success response body into v, rejecting non-JSON
// content types before touching the payload. Responses that nest the
// payload under a "data" key are unwrapped first.
func decodeJSON(resp *http.Response, v any) error {
	if !isJSON(resp) {
		return fmt.Errorf("%w: unexpected content type %q", common.ErrInvalidServerResponse, resp.Header.Get("Content-Type"))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if err := json.Unmarshal(unwrapData(raw), v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidServerResponse, err)
	}
	return nil
}

func isJSON(resp *http.Response) bool {
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/json"
}

// unwrapData normalizes the backend's inconsistent nesting: some endpoints
// wrap the payload as {"data": ...}, some do not.
func unwrapData(raw []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}

// serverMessage pulls a human-readable message out of an error body,
// tolerating both {"message": ...} and {"error": ...} shapes.
func serverMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// responseError maps a non-2xx response to the error taxonomy. The caller
// supplies the sentinel for 401/403 because it depends on the endpoint:
// credential endpoints reject with ErrInvalidCredentials, bearer endpoints
// with ErrUnauthenticated.
func responseError(resp *http.Response, unauthorized error) error {
	msg := serverMessage(resp)

	var base error
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		base = unauthorized
	case resp.StatusCode == http.StatusNotFound:
		base = common.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		base = common.ErrDuplicateAccount
	default:
		if msg == "" {
			return fmt.Errorf("server returned %s", resp.Status)
		}
		return fmt.Errorf("server returned %s: %s", resp.Status, msg)
	}

	if msg == "" {
		return base
	}
	return fmt.Errorf("%w: %s", base, msg)
}
