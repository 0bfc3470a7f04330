package backend

import (
    "fmt"
    "strings"
)

// Mode selects how the backend processes a URL.
type Mode string

const (
    Summarize  Mode = "summarize"
    Transcribe Mode = "transcribe"
)

// Modes lists the modes in menu order.
func Modes() []Mode { return []Mode{Summarize, Transcribe} }

// ParseMode accepts any casing of a mode name ("Summarize", "TRANSCRIBE").
func ParseMode(s string) (Mode, error) {
    switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
    case Summarize, Transcribe:
        return m, nil
    default:
        return "", fmt.Errorf("unknown mode %q (want summarize or transcribe)", s)
    }
}

// Label is the display form used by the mode selector.
func (m Mode) Label() string {
    switch m {
    case Summarize:
        return "Summarize"
    case Transcribe:
        return "Transcribe"
    default:
        return string(m)
    }
}

// Next cycles Summarize -> Transcribe -> Summarize.
func (m Mode) Next() Mode {
    if m == Summarize {
        return Transcribe
    }
    return Summarize
}
