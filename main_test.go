package main

import (
    "bytes"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "flashdigest/internal/backend"
    "flashdigest/internal/tui/state"
)

func execute(t *testing.T, args ...string) (string, error) {
    t.Helper()
    cmd := newRootCmd()
    var out bytes.Buffer
    cmd.SetOut(&out)
    cmd.SetErr(&out)
    base := []string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--log-file=-"}
    cmd.SetArgs(append(args, base...))
    err := cmd.Execute()
    return out.String(), err
}

func TestProcessPrintsResult(t *testing.T) {
    var got backend.Request
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
        w.Write([]byte(`{"result":"short summary"}`))
    }))
    defer srv.Close()

    out, err := execute(t, "process", "--backend", srv.URL, "-m", "Transcribe", "http://example.com/a")
    require.NoError(t, err)
    assert.Equal(t, "short summary\n", out)
    assert.Equal(t, backend.Request{URL: "http://example.com/a", Mode: backend.Transcribe}, got)
}

func TestProcessEmptyURL(t *testing.T) {
    _, err := execute(t, "process", "")
    require.Error(t, err)
    assert.Equal(t, state.MsgEmptyURL, err.Error())
}

func TestProcessBackendDown(t *testing.T) {
    srv := httptest.NewServer(http.NotFoundHandler())
    url := srv.URL
    srv.Close()

    _, err := execute(t, "process", "--backend", url, "--timeout", "1s", "http://example.com/a")
    require.Error(t, err)
    assert.Equal(t, state.MsgBackendDown, err.Error())
}

func TestDoctor(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Write([]byte(`{"message":"Welcome to the API!"}`))
    }))
    defer srv.Close()

    out, err := execute(t, "doctor", "--backend", srv.URL)
    require.NoError(t, err)
    assert.Contains(t, out, srv.URL+"/process")
    assert.Contains(t, out, "is up")
    assert.Contains(t, out, `says "Welcome to the API!"`)
}

func TestProcessFailureGoesToLogFile(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "pipeline exploded", http.StatusInternalServerError)
    }))
    defer srv.Close()
    logPath := filepath.Join(t.TempDir(), "flashdigest.log")

    cmd := newRootCmd()
    var out bytes.Buffer
    cmd.SetOut(&out)
    cmd.SetErr(&out)
    cmd.SetArgs([]string{"process", "--config", filepath.Join(t.TempDir(), "none.yaml"),
        "--backend", srv.URL, "--log-file", logPath, "http://example.com/a"})
    err := cmd.Execute()
    require.Error(t, err)
    assert.Equal(t, state.MsgBackendDown, err.Error())
    assert.NotContains(t, out.String(), "pipeline exploded")

    logged, rerr := os.ReadFile(logPath)
    require.NoError(t, rerr)
    assert.Equal(t, 1, strings.Count(string(logged), "level=error"))
    assert.Contains(t, string(logged), "pipeline exploded")
}

func TestInitWritesConfigOnce(t *testing.T) {
    path := filepath.Join(t.TempDir(), "cfg", "config.yaml")
    cmd := newRootCmd()
    var out bytes.Buffer
    cmd.SetOut(&out)
    cmd.SetArgs([]string{"init", "--config", path})
    require.NoError(t, cmd.Execute())
    _, err := os.Stat(path)
    require.NoError(t, err)
    assert.Contains(t, out.String(), "Wrote")

    out.Reset()
    cmd = newRootCmd()
    cmd.SetOut(&out)
    cmd.SetArgs([]string{"init", "--config", path})
    require.NoError(t, cmd.Execute())
    assert.Contains(t, out.String(), "not overwriting")
}

func TestLoadConfigPrecedence(t *testing.T) {
    gf := &globalFlags{configPath: filepath.Join(t.TempDir(), "none.yaml"), timeout: 3 * time.Second}
    env := map[string]string{"FLASHDIGEST_BACKEND_URL": "http://env:1", "FLASHDIGEST_TIMEOUT": "9s"}
    cfg, err := loadConfig(gf, func(k string) string { return env[k] })
    require.NoError(t, err)
    assert.Equal(t, "http://env:1", cfg.Backend.BaseURL)
    assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)

    gf.mode = "sing"
    _, err = loadConfig(gf, func(string) string { return "" })
    assert.Error(t, err)
}

func writeConfig(t *testing.T, doc string) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), "config.yaml")
    require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
    return path
}

func TestRunningBackendIsNotSpawned(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Write([]byte(`{"result":"ok"}`))
    }))
    defer srv.Close()
    path := writeConfig(t, "backend:\n  base_url: "+srv.URL+"\n  command: [flashdigest-no-such-binary]\n")

    cmd := newRootCmd()
    var out bytes.Buffer
    cmd.SetOut(&out)
    cmd.SetArgs([]string{"process", "--config", path, "--log-file=-", "http://example.com/a"})
    require.NoError(t, cmd.Execute())
    assert.Equal(t, "ok\n", out.String())
}

func TestSpawnFailureIsReported(t *testing.T) {
    srv := httptest.NewServer(http.NotFoundHandler())
    url := srv.URL
    srv.Close()
    path := writeConfig(t, "backend:\n  base_url: "+url+"\n  command: [flashdigest-no-such-binary]\n")

    cmd := newRootCmd()
    cmd.SetOut(&bytes.Buffer{})
    cmd.SetArgs([]string{"process", "--config", path, "--log-file=-", "http://example.com/a"})
    err := cmd.Execute()
    require.Error(t, err)
    assert.Contains(t, err.Error(), "start backend")
}
