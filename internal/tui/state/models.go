package state

import "flashdigest/internal/backend"

// Fixed user-facing messages.
const (
    MsgEmptyURL    = "Please enter a news URL."
    MsgBackendDown = "Failed to connect to backend. Ensure the server is running."
    MsgBusy        = "Already processing; press esc to cancel."
    MsgCancelled   = "Request cancelled."
)

// UIState is the single source of truth for the root view. Widgets get
// read-only copies of Output and History.
type UIState struct {
    // Form
    URLText string
    Mode    backend.Mode

    // Results
    Output  string
    History []string // append-only for the session

    // In-flight tracking. Token identifies the latest dispatch; results
    // carrying any other token are stale.
    Processing bool
    Token      uint64

    // Presentation
    Selected int // index into History
    ShowDiff bool
    ShowHelp bool
    Width    int

    // Notices and ephemeral messages
    Notice string
}

// New returns an idle state with the given mode selected.
func New(mode backend.Mode) UIState {
    if mode == "" {
        mode = backend.Summarize
    }
    return UIState{Mode: mode}
}
