package form

import (
    "strings"
    "testing"

    "flashdigest/internal/backend"
    "flashdigest/internal/tui/util"
)

func TestButtonLabelTracksProcessing(t *testing.T) {
    f := New(util.MonoPalette())
    idle := f.View("> http://example.com", backend.Summarize, false, "")
    if !strings.Contains(idle, "Process") || strings.Contains(idle, "Processing...") {
        t.Fatalf("idle form should show Process: %q", idle)
    }
    busy := f.View("> http://example.com", backend.Summarize, true, "*")
    if !strings.Contains(busy, "* Processing...") {
        t.Fatalf("busy form should show spinner and Processing...: %q", busy)
    }
}

func TestShowsBothModes(t *testing.T) {
    out := New(util.MonoPalette()).View("", backend.Transcribe, false, "")
    if !strings.Contains(out, "Summarize") || !strings.Contains(out, "Transcribe") {
        t.Fatalf("expected both modes: %q", out)
    }
}
