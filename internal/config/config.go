package config

import (
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"
    "time"

    "gopkg.in/yaml.v3"

    "flashdigest/internal/backend"
)

const (
    DefaultDir       = ".flashdigest"
    DefaultFile      = "config.yaml"
    DefaultLogFile   = "flashdigest.log"
    DefaultBaseURL   = "http://localhost:8002"
    DefaultPath      = "/process"
    DefaultTimeout   = 120 * time.Second
    DefaultLogoWidth = 44
    DefaultStartup   = 30 * time.Second
)

// Config is the on-disk YAML configuration.
type Config struct {
    Backend BackendConfig `yaml:"backend"`
    UI      UIConfig      `yaml:"ui"`
    Log     LogConfig     `yaml:"log"`
}

type BackendConfig struct {
    BaseURL     string        `yaml:"base_url"`
    ProcessPath string        `yaml:"process_path"`
    Timeout     time.Duration `yaml:"timeout"`
    // Command, when set, is started before the client and stopped on exit.
    Command        []string      `yaml:"command,omitempty"`
    StartupTimeout time.Duration `yaml:"startup_timeout"`
}

type UIConfig struct {
    DefaultMode string `yaml:"default_mode"`
    LogoWidth   int    `yaml:"logo_width"`
    NoColor     bool   `yaml:"no_color"`
}

type LogConfig struct {
    Level  string `yaml:"level"`
    Format string `yaml:"format"` // text | json
    File   string `yaml:"file"`   // "-" discards
}

// DefaultConfigPath returns .flashdigest/config.yaml relative to the working directory.
func DefaultConfigPath() string { return filepath.Join(DefaultDir, DefaultFile) }

// Default returns a fully populated config.
func Default() *Config {
    c := &Config{}
    _ = c.Validate()
    return c
}

// Load reads path. A missing file yields defaults; anything else that goes
// wrong is an error.
func Load(path string) (*Config, error) {
    data, err := os.ReadFile(path)
    if errors.Is(err, os.ErrNotExist) {
        return Default(), nil
    }
    if err != nil {
        return nil, fmt.Errorf("read config: %w", err)
    }
    var c Config
    if err := yaml.Unmarshal(data, &c); err != nil {
        return nil, fmt.Errorf("parse config YAML: %w", err)
    }
    if err := c.Validate(); err != nil {
        return nil, err
    }
    return &c, nil
}

// ApplyEnv overlays FLASHDIGEST_* variables. getenv is os.Getenv in production.
func (c *Config) ApplyEnv(getenv func(string) string) error {
    if v := strings.TrimSpace(getenv("FLASHDIGEST_BACKEND_URL")); v != "" {
        c.Backend.BaseURL = v
    }
    if v := strings.TrimSpace(getenv("FLASHDIGEST_TIMEOUT")); v != "" {
        d, err := time.ParseDuration(v)
        if err != nil {
            return fmt.Errorf("FLASHDIGEST_TIMEOUT: %w", err)
        }
        c.Backend.Timeout = d
    }
    if v := strings.TrimSpace(getenv("FLASHDIGEST_LOG_LEVEL")); v != "" {
        c.Log.Level = v
    }
    return nil
}

// Validate fills defaults and rejects values the client cannot use.
func (c *Config) Validate() error {
    if c.Backend.BaseURL == "" {
        c.Backend.BaseURL = DefaultBaseURL
    }
    if c.Backend.ProcessPath == "" {
        c.Backend.ProcessPath = DefaultPath
    }
    if c.Backend.Timeout == 0 {
        c.Backend.Timeout = DefaultTimeout
    }
    if c.Backend.StartupTimeout == 0 {
        c.Backend.StartupTimeout = DefaultStartup
    }
    if c.UI.DefaultMode == "" {
        c.UI.DefaultMode = string(backend.Summarize)
    }
    if c.UI.LogoWidth == 0 {
        c.UI.LogoWidth = DefaultLogoWidth
    }
    if c.Log.Level == "" {
        c.Log.Level = "info"
    }
    if c.Log.Format == "" {
        c.Log.Format = "text"
    }
    if c.Log.File == "" {
        c.Log.File = filepath.Join(DefaultDir, DefaultLogFile)
    }

    if err := backend.ValidateBaseURL(c.Backend.BaseURL); err != nil {
        return fmt.Errorf("backend.base_url: %w", err)
    }
    if c.Backend.Timeout < 0 {
        return fmt.Errorf("backend.timeout must be positive")
    }
    if c.Backend.StartupTimeout < 0 {
        return fmt.Errorf("backend.startup_timeout must be positive")
    }
    if len(c.Backend.Command) > 0 && strings.TrimSpace(c.Backend.Command[0]) == "" {
        return fmt.Errorf("backend.command: program name is empty")
    }
    if _, err := backend.ParseMode(c.UI.DefaultMode); err != nil {
        return fmt.Errorf("ui.default_mode: %w", err)
    }
    if c.Log.Format != "text" && c.Log.Format != "json" {
        return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
    }
    return nil
}

// Mode returns the parsed default mode. Call after Validate.
func (c *Config) Mode() backend.Mode {
    m, err := backend.ParseMode(c.UI.DefaultMode)
    if err != nil {
        return backend.Summarize
    }
    return m
}

func Save(path string, c *Config) error {
    data, err := yaml.Marshal(c)
    if err != nil {
        return err
    }
    if dir := filepath.Dir(path); dir != "." {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return fmt.Errorf("create config dir: %w", err)
        }
    }
    return os.WriteFile(path, data, 0644)
}
