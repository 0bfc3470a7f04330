package httpx

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "time"
)

var (
    DefaultTimeout = 20 * time.Second
)

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
    Method string
    URL    string
    Code   int
    Body   string // first 4KiB of the response body
}

func (e *StatusError) Error() string {
    return fmt.Sprintf("%s %s: %s (%d)", e.Method, e.URL, e.Body, e.Code)
}

// Client is a thin JSON-over-HTTP helper with a per-call timeout.
type Client struct {
    HTTP    *http.Client
    Timeout time.Duration
}

func New(timeout time.Duration) *Client {
    if timeout <= 0 {
        timeout = DefaultTimeout
    }
    return &Client{HTTP: http.DefaultClient, Timeout: timeout}
}

func (c *Client) GetJSON(ctx context.Context, url string) ([]byte, error) {
    return c.do(ctx, http.MethodGet, url, nil)
}

// PostJSON marshals body, posts it and returns the raw response body.
func (c *Client) PostJSON(ctx context.Context, url string, body any) ([]byte, error) {
    b, err := json.Marshal(body)
    if err != nil {
        return nil, fmt.Errorf("encode request: %w", err)
    }
    return c.do(ctx, http.MethodPost, url, b)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
    ctx, cancel := context.WithTimeout(ctx, c.timeout())
    defer cancel()

    var rd io.Reader
    if body != nil {
        rd = bytes.NewReader(body)
    }
    req, err := http.NewRequestWithContext(ctx, method, url, rd)
    if err != nil {
        return nil, err
    }
    req.Header.Set("Accept", "application/json")
    if body != nil {
        req.Header.Set("Content-Type", "application/json")
    }
    resp, err := c.client().Do(req)
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
        return nil, &StatusError{Method: method, URL: url, Code: resp.StatusCode, Body: string(b)}
    }
    all, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, err
    }
    return all, nil
}

// Ping reports whether url answers at all. Anything below 500 counts as up.
func (c *Client) Ping(ctx context.Context, url string) error {
    ctx, cancel := context.WithTimeout(ctx, c.timeout())
    defer cancel()
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
    if err != nil {
        return err
    }
    resp, err := c.client().Do(req) // #nosec G107
    if err != nil {
        return err
    }
    resp.Body.Close()
    if resp.StatusCode >= 500 {
        return &StatusError{Method: http.MethodGet, URL: url, Code: resp.StatusCode}
    }
    return nil
}

// WaitUp polls url with Ping until it answers or timeout elapses.
func (c *Client) WaitUp(ctx context.Context, url string, timeout time.Duration) error {
    deadline := time.Now().Add(timeout)
    for {
        if err := c.Ping(ctx, url); err == nil {
            return nil
        }
        if time.Now().After(deadline) {
            return fmt.Errorf("timeout waiting for %s", url)
        }
        select {
        case <-ctx.Done():
            return ctx.Err()
        case <-time.After(300 * time.Millisecond):
        }
    }
}

func (c *Client) client() *http.Client {
    if c.HTTP == nil {
        return http.DefaultClient
    }
    return c.HTTP
}

func (c *Client) timeout() time.Duration {
    if c.Timeout <= 0 {
        return DefaultTimeout
    }
    return c.Timeout
}
