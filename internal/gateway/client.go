package gateway

// Package gateway is the console's client for the GoIAM REST API. Every
// outbound call flows through Client.Do, which injects the bearer token and
// the project scope header and unwraps the {success, message, data}
// response envelope.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ScopeHeader annotates every project-scoped call with the active project id.
const ScopeHeader = "X-Project-Ids"

// ErrUnauthorized is returned when the upstream responds 401. Callers
// redirect the browser to /login and perform no further error handling.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is an application-level failure: the upstream answered with a
// well-formed envelope carrying success=false.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("goiam api error (status %d)", e.Status)
}

// Auth carries the per-call credentials: the session's bearer token and the
// active project id for scoped calls.
type Auth struct {
	Token     string
	ProjectID string
}

// PageQuery carries search and skip/limit paging for list calls.
type PageQuery struct {
	Search string
	Skip   int
	Limit  int
}

// Config holds configuration for the gateway client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional, defaults to a client bound by Timeout
	Logger     *slog.Logger // Optional
}

// Client calls the GoIAM REST API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient builds a gateway client. Callers should pass a sanitized config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("gateway base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{baseURL: baseURL, client: hc, logger: logger}, nil
}

// call describes one upstream request.
type call struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   Auth
	// scoped marks project-scoped calls: the scope header is always sent,
	// with an empty value when no project is active, never omitted.
	scoped bool
	out    any
}

func (c *Client) do(ctx context.Context, cl call) error {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if cl.auth.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.auth.Token)
	}
	if cl.scoped {
		req.Header.Set(ScopeHeader, cl.auth.ProjectID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("goiam request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		// Drain so the connection can be reused; the caller redirects.
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	}

	return decodeEnvelope(resp, cl.out)
}

// envelope is the uniform response shape of the GoIAM API.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(http.StatusText(resp.StatusCode))}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// pageValues encodes the conventional query/skip/limit paging parameters.
func pageValues(q PageQuery) url.Values {
	v := url.Values{}
	v.Set("query", strings.TrimSpace(q.Search))
	v.Set("skip", fmt.Sprintf("%d", q.Skip))
	v.Set("limit", fmt.Sprintf("%d", q.Limit))
	return v
}
