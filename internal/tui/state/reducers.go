package state

import "flashdigest/internal/backend"

// SetURLText replaces the URL text. No validation happens here.
func SetURLText(s UIState, text string) UIState {
    s.URLText = text
    return s
}

// SetMode replaces the selected mode.
func SetMode(s UIState, m backend.Mode) UIState {
    s.Mode = m
    return s
}

// ToggleMode cycles Summarize and Transcribe.
func ToggleMode(s UIState) UIState {
    s.Mode = s.Mode.Next()
    return s
}

// BeginSubmit validates the form and, when accepted, marks the state as
// processing and returns the request to dispatch. A nil request means
// nothing should be sent.
func BeginSubmit(s UIState) (UIState, *backend.Request) {
    if s.URLText == "" {
        s.Output = MsgEmptyURL
        return s, nil
    }
    if s.Processing {
        s.Notice = MsgBusy
        return s, nil
    }
    s.Processing = true
    s.Token++
    s.Notice = ""
    mode, err := backend.ParseMode(string(s.Mode))
    if err != nil {
        mode = backend.Summarize
    }
    return s, &backend.Request{URL: s.URLText, Mode: mode}
}

// Resolve applies the outcome of the request identified by token. Outcomes
// for anything but the latest dispatch are ignored.
func Resolve(s UIState, token uint64, result string, err error) UIState {
    if token != s.Token || !s.Processing {
        return s
    }
    s.Processing = false
    if err != nil {
        s.Output = MsgBackendDown
        return s
    }
    s.Output = result
    // full slice expression so copies of the old state never share the tail
    n := len(s.History)
    s.History = append(s.History[:n:n], result)
    s.Selected = len(s.History) - 1
    return s
}

// Cancel abandons the in-flight request. The token moves on so a late
// response is dropped.
func Cancel(s UIState) UIState {
    if !s.Processing {
        return s
    }
    s.Processing = false
    s.Token++
    s.Notice = MsgCancelled
    return s
}

// SelectPrev moves the history cursor towards older entries.
func SelectPrev(s UIState) UIState {
    if s.Selected > 0 {
        s.Selected--
    }
    return s
}

// SelectNext moves the history cursor towards newer entries.
func SelectNext(s UIState) UIState {
    if s.Selected < len(s.History)-1 {
        s.Selected++
    }
    return s
}

// ToggleDiff flips the comparison view. It needs two entries to compare.
func ToggleDiff(s UIState) UIState {
    if !s.ShowDiff && len(s.History) < 2 {
        s.Notice = "Need at least two results to compare"
        return s
    }
    s.ShowDiff = !s.ShowDiff
    return s
}

func ToggleHelp(s UIState) UIState {
    s.ShowHelp = !s.ShowHelp
    return s
}

// Resize records the terminal width.
func Resize(s UIState, width int) UIState {
    s.Width = width
    return s
}

// SetNotice sets a one-line status message.
func SetNotice(s UIState, msg string) UIState {
    s.Notice = msg
    return s
}
