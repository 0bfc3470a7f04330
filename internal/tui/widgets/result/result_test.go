package result

import (
    "strings"
    "testing"

    "flashdigest/internal/tui/util"
)

func TestEmptyState(t *testing.T) {
    out := New(util.MonoPalette()).View("", 80)
    if !strings.Contains(out, Empty) { t.Fatalf("missing empty-state message: %q", out) }
}

func TestRendersOutput(t *testing.T) {
    out := New(util.MonoPalette()).View("X", 80)
    if !strings.Contains(out, "X") { t.Fatalf("missing output: %q", out) }
    if strings.Contains(out, Empty) { t.Fatalf("empty-state shown alongside output") }
}

func TestWrapsLongOutput(t *testing.T) {
    long := strings.Repeat("word ", 40)
    out := New(util.MonoPalette()).View(long, 20)
    if strings.Count(out, "\n") < 5 { t.Fatalf("expected wrapped output, got %q", out) }
}
