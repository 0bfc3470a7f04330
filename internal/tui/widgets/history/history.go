package history

import (
    "fmt"
    "strings"

    "github.com/charmbracelet/lipgloss"

    "flashdigest/internal/tui/util"
)

// Empty is shown while the session has no results.
const Empty = "No past summaries yet."

type History struct {
    title lipgloss.Style
    item  lipgloss.Style
    sel   lipgloss.Style
    num   lipgloss.Style
    empty lipgloss.Style
}

func New(p util.Palette) History {
    return History{
        title: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
        item:  lipgloss.NewStyle().PaddingLeft(1),
        sel:   lipgloss.NewStyle().PaddingLeft(1).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(p.Primary),
        num:   lipgloss.NewStyle().Foreground(p.Muted),
        empty: lipgloss.NewStyle().Faint(true).Italic(true),
    }
}

// View lists entries oldest first. selected < 0 disables highlighting.
func (h History) View(entries []string, selected, width int) string {
    var b strings.Builder
    b.WriteString(h.title.Render(fmt.Sprintf("History (%d)", len(entries))) + "\n")
    if len(entries) == 0 {
        b.WriteString(h.empty.Render(Empty))
        return b.String()
    }
    for i, e := range entries {
        st := h.item
        if i == selected {
            st = h.sel
        }
        if width > 4 {
            st = st.Width(width - 2)
        }
        b.WriteString(h.num.Render(fmt.Sprintf("#%d", i+1)) + "\n")
        b.WriteString(st.Render(e))
        if i < len(entries)-1 {
            b.WriteString("\n\n")
        }
    }
    return b.String()
}
