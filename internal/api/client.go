package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token. The session store implements
// it; API-issuing components never read durable storage directly.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token TokenSource, used by the login call (empty) and
// in tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client talks to the tracker's REST backend. All methods take a context and
// return the taxonomy errors from errors.go; callers at the UI boundary decide
// what each kind means for navigation.
type Client struct {
	cfg      Config
	http     *http.Client
	tokens   TokenSource
	observer Observer
}

// NewClient creates a backend client. observer may be nil.
func NewClient(cfg Config, tokens TokenSource, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		tokens:   tokens,
		observer: observer,
	}
}

// serverMessage is the error body shape the backend uses for rejections.
type serverMessage struct {
	Message string `json:"message"`
}

// get issues an authenticated GET, retrying transport failures up to
// MaxRetries times. Reads are safe to retry; mutations are not.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out, 1+c.cfg.MaxRetries)
}

// send issues an authenticated mutating call exactly once. A client-generated
// idempotency key lets the backend dedupe an ambiguous resend.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.call(ctx, method, path, body, out, 1)
}

func (c *Client) call(ctx context.Context, method, path string, body, out any, attempts int) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
	}

	idempotencyKey := ""
	if method == http.MethodPost || method == http.MethodPut {
		idempotencyKey = uuid.NewString()
	}

	var lastErr error
	var lastStatus int
	for i := 0; i < attempts; i++ {
		status, err := c.doRequest(ctx, method, path, payload, idempotencyKey, out)
		lastStatus = status
		if err == nil {
			c.observer.OnCallComplete(CallEvent{
				Method: method, Path: path, Status: status,
				LatencyMs: time.Since(start).Milliseconds(), Success: true,
			})
			return nil
		}
		lastErr = err

		// Status-mapped errors are definitive; only transport failures retry.
		if status != 0 || ctx.Err() != nil {
			break
		}
	}

	c.observer.OnCallComplete(CallEvent{
		Method: method, Path: path, Status: lastStatus,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false, ErrorCode: errorCode(lastErr),
	})

	if lastStatus == 0 {
		// The request never reached the server.
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrNetworkUnavailable, ctx.Err())
		}
		return fmt.Errorf("%w: %v", ErrNetworkUnavailable, lastErr)
	}
	return lastErr
}

// doRequest performs one HTTP round trip. The returned status is 0 when the
// request never reached the server.
func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte, idempotencyKey string, out any) (int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if err := mapStatus(resp.StatusCode, respBody); err != nil {
		return resp.StatusCode, err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// mapStatus converts a non-2xx response into the client error taxonomy.
func mapStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var msg serverMessage
	_ = json.Unmarshal(body, &msg)

	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden, http.StatusConflict:
		// The backend signals "record locked" as a refusal of the mutation.
		if msg.Message != "" {
			return fmt.Errorf("%w: %s", ErrConflict, msg.Message)
		}
		return ErrConflict
	default:
		return &ServerError{Status: status, Message: msg.Message}
	}
}

func errorCode(err error) string {
	var srvErr *ServerError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return "UNAUTHENTICATED"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrNetworkUnavailable):
		return "UNREACHABLE"
	case errors.As(err, &srvErr):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}
