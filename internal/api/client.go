// Package api is the typed HTTP client for the LeadPilot platform.
//
// The client attaches the bearer token from its TokenSource, retries a
// rate-limited request exactly once, and reports every failure as a typed
// *Error. It never mutates stored credentials: a 401 is surfaced to the
// caller, and the session controller decides what to do about it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/leadpilot/leadpilot/internal/log"
)

// defaultTimeout bounds requests when no timeout is configured.
const defaultTimeout = 30 * time.Second

// defaultRetryAfter is used when a 429 response carries no Retry-After header.
const defaultRetryAfter = 1 * time.Second

// TokenSource supplies the current bearer token.
// An empty string means no token; the request is sent unauthenticated
// and authorization failures are the server's to report.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token TokenSource, mainly for tests and one-shot
// commands that already hold a token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

// Client is the LeadPilot platform API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *log.Logger

	// sleep is swapped out in tests to avoid real waits.
	sleep func(time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets where the client reads its bearer token from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new platform API client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: log.DefaultLogger().With("component", "api"),
		sleep:  time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorBody is the error payload shape the platform returns.
// FastAPI-style "detail" and the older "error"/"message" shapes both occur.
type errorBody struct {
	Detail  string            `json:"detail"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// do performs a request and decodes a 2xx JSON response into out.
// A 429 response is retried exactly once after honoring Retry-After;
// a second 429 is surfaced as KindRateLimited.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	requestID := uuid.NewString()

	resp, err := c.send(ctx, method, path, body, requestID)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		wait := retryAfter(resp)
		drain(resp)

		c.logger.Debug("rate limited, retrying once",
			"method", method, "path", path, "retry_after", wait)
		c.sleep(wait)

		resp, err = c.send(ctx, method, path, body, requestID)
		if err != nil {
			return err
		}
	}

	return c.decode(resp, out, requestID)
}

// send builds and executes a single HTTP request.
func (c *Client) send(ctx context.Context, method, path string, body any, requestID string) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{
				Kind:      KindUnknown,
				Message:   "failed to marshal request body",
				RequestID: requestID,
				Cause:     err,
			}
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &Error{
			Kind:      KindUnknown,
			Message:   "failed to create request",
			RequestID: requestID,
			Cause:     err,
		}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:      KindNetwork,
			Message:   fmt.Sprintf("no response from %s", c.baseURL),
			RequestID: requestID,
			Cause:     err,
		}
	}

	return resp, nil
}

// decode parses the response body into out, or into a typed error.
func (c *Client) decode(resp *http.Response, out any, requestID string) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{
				Kind:      KindUnknown,
				Status:    resp.StatusCode,
				Message:   "failed to decode response",
				RequestID: requestID,
				Cause:     err,
			}
		}
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)

	apiErr := &Error{
		Kind:      classifyStatus(resp.StatusCode),
		Status:    resp.StatusCode,
		Message:   http.StatusText(resp.StatusCode),
		RequestID: requestID,
	}

	var parsed errorBody
	if err := json.Unmarshal(raw, &parsed); err == nil {
		switch {
		case parsed.Detail != "":
			apiErr.Message = parsed.Detail
		case parsed.Error != "":
			apiErr.Message = parsed.Error
		case parsed.Message != "":
			apiErr.Message = parsed.Message
		}
		if len(parsed.Errors) > 0 {
			apiErr.Fields = parsed.Errors
		}
	} else if len(raw) > 0 {
		apiErr.Message = string(raw)
	}

	c.logger.Debug("request failed",
		"status", resp.StatusCode, "kind", apiErr.Kind.String(), "request_id", requestID)

	return apiErr
}

// retryAfter parses the Retry-After header: either delay seconds or an
// HTTP date. Falls back to one second.
func retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return defaultRetryAfter
	}

	if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}

	if at, err := http.ParseTime(header); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
		return 0
	}

	return defaultRetryAfter
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
