package backend

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/url"
    "strings"
    "time"

    "github.com/sirupsen/logrus"

    "flashdigest/internal/httpx"
)

var (
    ErrBadResponse = errors.New("unexpected backend response")
)

// Request is the JSON body posted to the processing endpoint.
type Request struct {
    URL  string `json:"url"`
    Mode Mode   `json:"mode"`
}

// Processor turns a URL into a summary or transcript. The real work happens
// in the remote service; Client is the HTTP implementation.
type Processor interface {
    Process(ctx context.Context, url string, mode Mode) (string, error)
}

// Client talks to the processing backend over HTTP.
type Client struct {
    base string
    path string
    http *httpx.Client
    log  logrus.FieldLogger
}

// NewClient builds a client for baseURL (e.g. http://localhost:8002) and
// processPath (e.g. /process). A nil logger discards output.
func NewClient(baseURL, processPath string, timeout time.Duration, log logrus.FieldLogger) *Client {
    if log == nil {
        l := logrus.New()
        l.SetLevel(logrus.PanicLevel)
        log = l
    }
    return &Client{
        base: strings.TrimRight(baseURL, "/"),
        path: ensureLeadingSlash(processPath),
        http: httpx.New(timeout),
        log:  log,
    }
}

// Endpoint is the full processing URL.
func (c *Client) Endpoint() string { return c.base + c.path }

// BaseURL is the backend root, used for health checks.
func (c *Client) BaseURL() string { return c.base + "/" }

// Process posts {url, mode} and returns the "result" string. The URL is sent
// as given; judging it is the backend's job.
func (c *Client) Process(ctx context.Context, u string, mode Mode) (string, error) {
    m, err := ParseMode(string(mode))
    if err != nil {
        return "", err
    }
    req := Request{URL: u, Mode: m}
    start := time.Now()
    raw, err := c.http.PostJSON(ctx, c.Endpoint(), req)
    if err != nil {
        return "", fmt.Errorf("process %s: %w", m, err)
    }
    res, err := decodeResult(raw)
    if err != nil {
        return "", err
    }
    c.log.WithFields(logrus.Fields{
        "mode":     m,
        "url":      u,
        "bytes":    len(res),
        "duration": time.Since(start).Round(time.Millisecond),
    }).Debug("backend responded")
    return res, nil
}

// WaitReady blocks until Ping succeeds or timeout elapses.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
    return c.http.WaitUp(ctx, c.BaseURL(), timeout)
}

// Ping checks that the backend root answers.
func (c *Client) Ping(ctx context.Context) error {
    return c.http.Ping(ctx, c.BaseURL())
}

// Welcome fetches the backend root and returns its "message" field, which
// the service uses as a greeting. An answer without one yields "".
func (c *Client) Welcome(ctx context.Context) (string, error) {
    raw, err := c.http.GetJSON(ctx, c.BaseURL())
    if err != nil {
        return "", err
    }
    var body struct {
        Message string `json:"message"`
    }
    if err := json.Unmarshal(raw, &body); err != nil {
        return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
    }
    return body.Message, nil
}

// decodeResult accepts only {"result": "<string>"}. The backend reports
// pipeline failures as {"result": {"error": "..."}} with a 200 status.
func decodeResult(raw []byte) (string, error) {
    var body struct {
        Result json.RawMessage `json:"result"`
    }
    if err := json.Unmarshal(raw, &body); err != nil {
        return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
    }
    if len(body.Result) == 0 || string(body.Result) == "null" {
        return "", fmt.Errorf("%w: missing result", ErrBadResponse)
    }
    var s string
    if err := json.Unmarshal(body.Result, &s); err == nil {
        return s, nil
    }
    var pipe struct {
        Error string `json:"error"`
    }
    if err := json.Unmarshal(body.Result, &pipe); err == nil && pipe.Error != "" {
        return "", fmt.Errorf("%w: %s", ErrBadResponse, pipe.Error)
    }
    return "", fmt.Errorf("%w: result is not a string", ErrBadResponse)
}

// ValidateBaseURL rejects anything that is not an absolute http(s) URL.
func ValidateBaseURL(s string) error {
    u, err := url.Parse(s)
    if err != nil {
        return fmt.Errorf("parse backend url: %w", err)
    }
    if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
        return fmt.Errorf("backend url %q must be absolute http(s)", s)
    }
    return nil
}

func ensureLeadingSlash(s string) string {
    if s == "" {
        return "/"
    }
    if !strings.HasPrefix(s, "/") {
        return "/" + s
    }
    return s
}
