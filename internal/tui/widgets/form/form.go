package form

import (
    "fmt"
    "strings"

    "github.com/charmbracelet/lipgloss"

    "flashdigest/internal/backend"
    "flashdigest/internal/tui/util"
)

// Form renders the URL field, the mode selector and the process button.
// The input itself is a bubbles textinput owned by the root model; Form
// only lays out its rendered view.
type Form struct {
    label   lipgloss.Style
    mode    lipgloss.Style
    modeOff lipgloss.Style
    button  lipgloss.Style
    busy    lipgloss.Style
}

func New(p util.Palette) Form {
    chip := lipgloss.NewStyle().Padding(0, 1)
    return Form{
        label:   lipgloss.NewStyle().Faint(true),
        mode:    chip.Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary),
        modeOff: chip.Faint(true).Border(lipgloss.HiddenBorder()),
        button:  chip.Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(p.Success),
        busy:    chip.Border(lipgloss.RoundedBorder()).BorderForeground(p.Warning),
    }
}

// ButtonLabel mirrors the submit button text.
func ButtonLabel(processing bool) string {
    if processing {
        return "Processing..."
    }
    return "Process"
}

// View lays out input (already rendered), the modes and the button. spinner
// is prepended to the button label while processing.
func (f Form) View(input string, selected backend.Mode, processing bool, spinner string) string {
    var b strings.Builder
    b.WriteString(f.label.Render("Enter news URL...") + "\n")
    b.WriteString(input + "\n")

    modes := make([]string, 0, len(backend.Modes()))
    for _, m := range backend.Modes() {
        if m == selected {
            modes = append(modes, f.mode.Render(m.Label()))
        } else {
            modes = append(modes, f.modeOff.Render(m.Label()))
        }
    }
    btn := f.button.Render(ButtonLabel(false))
    if processing {
        btn = f.busy.Render(strings.TrimSpace(fmt.Sprintf("%s %s", spinner, ButtonLabel(true))))
    }
    row := append(modes, "  ", btn)
    b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, row...))
    return b.String()
}
