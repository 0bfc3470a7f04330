package statusbar

import (
    "strings"
    "testing"

    "flashdigest/internal/backend"
    "flashdigest/internal/tui/state"
)

func TestStatusLine(t *testing.T) {
    s := state.UIState{Mode: backend.Transcribe, Processing: true, History: []string{"a"}, Notice: "copied"}
    out := NewStatusBar().View(s)
    for _, want := range []string{"[Transcribe]", "Processing", "History: 1", "copied"} {
        if !strings.Contains(out, want) { t.Fatalf("expected %q in %q", want, out) }
    }
}
