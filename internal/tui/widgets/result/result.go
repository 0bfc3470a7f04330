package result

import (
    "strings"

    "github.com/charmbracelet/lipgloss"

    "flashdigest/internal/tui/util"
)

// Empty is shown until the first output arrives.
const Empty = "No summary or transcription yet."

type Result struct {
    title lipgloss.Style
    body  lipgloss.Style
    empty lipgloss.Style
}

func New(p util.Palette) Result {
    return Result{
        title: lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
        body:  lipgloss.NewStyle(),
        empty: lipgloss.NewStyle().Faint(true).Italic(true),
    }
}

// View renders output verbatim, wrapped to width when width > 0.
func (r Result) View(output string, width int) string {
    var b strings.Builder
    b.WriteString(r.title.Render("Result") + "\n")
    if output == "" {
        b.WriteString(r.empty.Render(Empty))
        return b.String()
    }
    body := r.body
    if width > 0 {
        body = body.Width(width)
    }
    b.WriteString(body.Render(output))
    return b.String()
}
