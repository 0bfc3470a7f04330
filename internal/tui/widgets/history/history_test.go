package history

import (
    "strings"
    "testing"

    "flashdigest/internal/tui/util"
)

func TestEmptyState(t *testing.T) {
    out := New(util.MonoPalette()).View(nil, -1, 80)
    if !strings.Contains(out, Empty) { t.Fatalf("missing empty-state message: %q", out) }
}

func TestEntriesInOrder(t *testing.T) {
    out := New(util.MonoPalette()).View([]string{"a", "b"}, 1, 80)
    ia, ib := strings.Index(out, "a"), strings.Index(out, "b")
    if ia < 0 || ib < 0 || ia > ib { t.Fatalf("expected a before b: %q", out) }
    if strings.Contains(out, Empty) { t.Fatalf("empty-state shown with entries") }
    if !strings.Contains(out, "#1") || !strings.Contains(out, "#2") { t.Fatalf("missing entry numbers: %q", out) }
}
