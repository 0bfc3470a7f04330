package util

import (
    "os"

    "github.com/charmbracelet/lipgloss"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
    if explicit {
        return true
    }
    return os.Getenv("NO_COLOR") != ""
}

// Palette defines a small set of colors used across widgets.
type Palette struct {
    Primary   lipgloss.TerminalColor
    Success   lipgloss.TerminalColor
    Danger    lipgloss.TerminalColor
    Warning   lipgloss.TerminalColor
    Muted     lipgloss.TerminalColor
    MutedDark lipgloss.TerminalColor
}

// DefaultPalette returns the default palette.
func DefaultPalette() Palette {
    return Palette{
        Primary:   lipgloss.Color("#3D6DFF"),
        Success:   lipgloss.Color("#2AA876"),
        Danger:    lipgloss.Color("#D9534F"),
        Warning:   lipgloss.Color("#F0AD4E"),
        Muted:     lipgloss.Color("#6C757D"),
        MutedDark: lipgloss.Color("#5A5A5A"),
    }
}

// MonoPalette has no colors at all; styles built from it only carry
// bold/faint/underline attributes.
func MonoPalette() Palette {
    n := lipgloss.NoColor{}
    return Palette{Primary: n, Success: n, Danger: n, Warning: n, Muted: n, MutedDark: n}
}

// PaletteFor picks the palette honoring --no-color and NO_COLOR.
func PaletteFor(noColor bool) Palette {
    if NoColor(noColor) {
        return MonoPalette()
    }
    return DefaultPalette()
}
