package config

import (
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "flashdigest/internal/backend"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
    c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
    require.NoError(t, err)
    assert.Equal(t, DefaultBaseURL, c.Backend.BaseURL)
    assert.Equal(t, DefaultPath, c.Backend.ProcessPath)
    assert.Equal(t, DefaultTimeout, c.Backend.Timeout)
    assert.Equal(t, backend.Summarize, c.Mode())
}

func TestLoadYAML(t *testing.T) {
    path := filepath.Join(t.TempDir(), "config.yaml")
    doc := `backend:
  base_url: http://digest.internal:9000
  timeout: 45s
  command: [uvicorn, main:app, --port, "9000"]
ui:
  default_mode: Transcribe
log:
  level: debug
  format: json
`
    require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

    c, err := Load(path)
    require.NoError(t, err)
    assert.Equal(t, "http://digest.internal:9000", c.Backend.BaseURL)
    assert.Equal(t, "/process", c.Backend.ProcessPath)
    assert.Equal(t, 45*time.Second, c.Backend.Timeout)
    assert.Equal(t, []string{"uvicorn", "main:app", "--port", "9000"}, c.Backend.Command)
    assert.Equal(t, DefaultStartup, c.Backend.StartupTimeout)
    assert.Equal(t, backend.Transcribe, c.Mode())
    assert.Equal(t, "json", c.Log.Format)
}

func TestLoadRejectsBadValues(t *testing.T) {
    dir := t.TempDir()
    cases := map[string]string{
        "url":    "backend:\n  base_url: localhost:8002\n",
        "mode":   "ui:\n  default_mode: translate\n",
        "format": "log:\n  format: xml\n",
        "yaml":   "backend: [\n",
        "cmd":    "backend:\n  command: [\"\"]\n",
    }
    for name, doc := range cases {
        path := filepath.Join(dir, name+".yaml")
        require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
        _, err := Load(path)
        assert.Error(t, err, name)
    }
}

func TestApplyEnv(t *testing.T) {
    env := map[string]string{
        "FLASHDIGEST_BACKEND_URL": "https://digest.example.com",
        "FLASHDIGEST_TIMEOUT":     "5s",
        "FLASHDIGEST_LOG_LEVEL":   "warn",
    }
    c := Default()
    require.NoError(t, c.ApplyEnv(func(k string) string { return env[k] }))
    assert.Equal(t, "https://digest.example.com", c.Backend.BaseURL)
    assert.Equal(t, 5*time.Second, c.Backend.Timeout)
    assert.Equal(t, "warn", c.Log.Level)

    env["FLASHDIGEST_TIMEOUT"] = "soon"
    assert.Error(t, c.ApplyEnv(func(k string) string { return env[k] }))
}

func TestSaveRoundTrip(t *testing.T) {
    path := filepath.Join(t.TempDir(), "nested", "config.yaml")
    c := Default()
    c.Backend.Timeout = 90 * time.Second
    require.NoError(t, Save(path, c))

    back, err := Load(path)
    require.NoError(t, err)
    assert.Equal(t, c, back)
}
