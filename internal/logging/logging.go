package logging

import (
    "fmt"
    "io"
    "os"
    "path/filepath"
    "strings"

    "github.com/sirupsen/logrus"
)

// Options mirrors the log section of the config file.
type Options struct {
    Level  string
    Format string // text | json
    File   string // "-" discards everything
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger writing to opts.File. The TUI owns the terminal, so
// logs never go to stdout. The returned closer releases the file.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
    l := logrus.New()

    lvl := logrus.InfoLevel
    if s := strings.TrimSpace(opts.Level); s != "" {
        parsed, err := logrus.ParseLevel(s)
        if err != nil {
            return nil, nil, fmt.Errorf("log level: %w", err)
        }
        lvl = parsed
    }
    l.SetLevel(lvl)

    switch strings.ToLower(opts.Format) {
    case "json":
        l.SetFormatter(&logrus.JSONFormatter{})
    case "", "text":
        l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
    default:
        return nil, nil, fmt.Errorf("log format %q", opts.Format)
    }

    if opts.File == "" || opts.File == "-" {
        l.SetOutput(io.Discard)
        return l, nopCloser{}, nil
    }
    if dir := filepath.Dir(opts.File); dir != "." {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return nil, nil, fmt.Errorf("create log dir: %w", err)
        }
    }
    f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
    if err != nil {
        return nil, nil, fmt.Errorf("open log file: %w", err)
    }
    l.SetOutput(f)
    return l, f, nil
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *logrus.Logger {
    l := logrus.New()
    l.SetOutput(io.Discard)
    return l
}
