package statusbar

import (
    "fmt"
    "strings"

    "flashdigest/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state.
func (StatusBar) View(s state.UIState) string {
    mode := "[" + s.Mode.Label() + "]"
    proc := "Idle"
    if s.Processing {
        proc = "Processing"
    }
    hist := fmt.Sprintf("History: %d", len(s.History))
    view := "Result"
    if s.ShowDiff {
        view = "Compare"
    }

    parts := []string{mode, proc, hist, view}
    if s.Notice != "" {
        parts = append(parts, s.Notice)
    }
    return strings.Join(parts, "  ")
}
