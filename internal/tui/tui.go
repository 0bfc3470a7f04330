package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"flashdigest/internal/backend"
	"flashdigest/internal/tui/state"
	"flashdigest/internal/tui/util"
	diffw "flashdigest/internal/tui/widgets/diff"
	"flashdigest/internal/tui/widgets/form"
	"flashdigest/internal/tui/widgets/helpoverlay"
	"flashdigest/internal/tui/widgets/history"
	"flashdigest/internal/tui/widgets/result"
	"flashdigest/internal/tui/widgets/statusbar"
)

// Options wires the TUI to its collaborators.
type Options struct {
	Processor backend.Processor
	Mode      backend.Mode
	Log       logrus.FieldLogger
	Endpoint  string // shown under the banner
	LogoWidth int
	NoColor   bool
	Copy      func(string) error // defaults to the system clipboard
}

// Run blocks until the user quits. Any request still in flight is cancelled.
func Run(opts Options) error {
	m := newModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(model); ok {
		fm.abort()
	}
	return err
}

// ===== Model =====

// resultMsg carries a backend outcome back to Update together with the
// token of the dispatch that produced it.
type resultMsg struct {
	token  uint64
	result string
	err    error
}

type copiedMsg struct{ err error }

type model struct {
	st   state.UIState
	keys keyMap

	input  textinput.Model
	spin   spinner.Model
	vp     viewport.Model
	help   help.Model
	height int

	proc     backend.Processor
	log      logrus.FieldLogger
	copyFn   func(string) error
	cancel   context.CancelFunc
	endpoint string

	logoW   int
	styles  styles
	form    form.Form
	result  result.Result
	history history.History
	diff    diffw.DiffView
	status  statusbar.StatusBar
	overlay helpoverlay.HelpOverlay
}

type styles struct {
	banner lipgloss.Style
	faint  lipgloss.Style
	status lipgloss.Style
}

func newModel(opts Options) model {
	p := util.PaletteFor(opts.NoColor)

	in := textinput.New()
	in.Placeholder = "Enter news URL"
	in.Prompt = "> "
	in.Width = 60
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(p.Warning)

	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	cp := opts.Copy
	if cp == nil {
		cp = clipboard.WriteAll
	}
	logoW := opts.LogoWidth
	if logoW <= 0 {
		logoW = 44
	}

	m := model{
		st:       state.New(opts.Mode),
		keys:     defaultKeys(),
		input:    in,
		spin:     sp,
		vp:       viewport.New(80, 10),
		help:     help.New(),
		height:   24,
		proc:     opts.Processor,
		log:      log,
		copyFn:   cp,
		endpoint: opts.Endpoint,
		logoW:    logoW,
		styles: styles{
			banner: lipgloss.NewStyle().
				Bold(true).
				Foreground(p.Primary).
				Border(lipgloss.DoubleBorder()).
				BorderForeground(p.Primary).
				Align(lipgloss.Center).
				Width(logoW),
			faint:  lipgloss.NewStyle().Foreground(p.Muted),
			status: lipgloss.NewStyle().Foreground(p.MutedDark),
		},
		form:    form.New(p),
		result:  result.New(p),
		history: history.New(p),
		diff:    diffw.NewDiffView(p),
		status:  statusbar.NewStatusBar(),
		overlay: helpoverlay.NewHelpOverlay(),
	}
	m.layout()
	return m
}

func (m model) Init() tea.Cmd { return textinput.Blink }

// Update handles all TUI interactions.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.st = state.Resize(m.st, msg.Width)
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-2, 10)
		m.help.Width = msg.Width

	case spinner.TickMsg:
		if m.st.Processing {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}

	case resultMsg:
		m = m.resolve(msg)

	case copiedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("clipboard write failed")
			m.st = state.SetNotice(m.st, "Copy failed: "+msg.err.Error())
		} else {
			m.st = state.SetNotice(m.st, "Copied result to clipboard")
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	default:
		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	m.layout()
	return m, tea.Batch(cmds...)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQ):
		m.abort()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Mode):
		m.st = state.ToggleMode(m.st)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		switch {
		case m.st.Processing:
			m.log.WithField("token", m.st.Token).Info("request cancelled by user")
			m.abort()
			m.st = state.Cancel(m.st)
		case m.st.ShowHelp:
			m.st = state.ToggleHelp(m.st)
		default:
			m.input.Blur()
		}
		return m, nil
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.st = state.SetURLText(m.st, m.input.Value())
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.abort()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Up):
		m.st = state.SelectPrev(m.st)
	case key.Matches(msg, m.keys.Down):
		m.st = state.SelectNext(m.st)
	case key.Matches(msg, m.keys.Copy):
		return m.copyOutput()
	case key.Matches(msg, m.keys.Diff):
		m.st = state.ToggleDiff(m.st)
	case key.Matches(msg, m.keys.Help):
		m.st = state.ToggleHelp(m.st)
	default:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit validates the form and dispatches at most one backend call.
func (m model) submit() (model, tea.Cmd) {
	st, req := state.BeginSubmit(m.st)
	m.st = st
	if req == nil {
		if m.st.URLText == "" {
			m.log.Debug("submit rejected: empty url")
		} else {
			m.log.WithField("token", m.st.Token).Debug("submit ignored: request in flight")
		}
		return m, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.log.WithFields(logrus.Fields{"url": req.URL, "mode": req.Mode, "token": st.Token}).Info("dispatching request")
	return m, tea.Batch(m.spin.Tick, dispatch(ctx, m.proc, *req, st.Token))
}

func dispatch(ctx context.Context, p backend.Processor, req backend.Request, token uint64) tea.Cmd {
	return func() tea.Msg {
		res, err := p.Process(ctx, req.URL, req.Mode)
		return resultMsg{token: token, result: res, err: err}
	}
}

func (m model) resolve(msg resultMsg) model {
	if msg.token != m.st.Token || !m.st.Processing {
		m.log.WithField("token", msg.token).Debug("dropping stale result")
		return m
	}
	if msg.err != nil {
		m.log.WithError(msg.err).WithField("token", msg.token).Error("Error calling backend")
	} else {
		m.log.WithFields(logrus.Fields{"token": msg.token, "bytes": len(msg.result)}).Info("result received")
	}
	m.abort()
	m.st = state.Resolve(m.st, msg.token, msg.result, msg.err)
	m.vp.GotoTop()
	return m
}

func (m model) copyOutput() (model, tea.Cmd) {
	out := m.st.Output
	if out == "" {
		m.st = state.SetNotice(m.st, "Nothing to copy")
		return m, nil
	}
	fn := m.copyFn
	return m, func() tea.Msg { return copiedMsg{err: fn(out)} }
}

func (m *model) abort() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// layout sizes the viewport to whatever the header and footer leave over.
func (m *model) layout() {
	w := m.st.Width
	if w <= 0 {
		w = 80
	}
	h := m.height - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView()) - 2
	if h < 3 {
		h = 3
	}
	m.vp.Width = w
	m.vp.Height = h
	m.vp.SetContent(m.bodyView(w))
}

// ===== Views =====

func (m model) View() string {
	return strings.Join([]string{m.headerView(), m.vp.View(), m.footerView()}, "\n\n")
}

func (m model) headerView() string {
	var b strings.Builder
	b.WriteString(m.styles.banner.Render("⚡ Flash Digest") + "\n")
	if m.endpoint != "" {
		b.WriteString(m.styles.faint.Render("backend: "+m.endpoint) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.form.View(m.input.View(), m.st.Mode, m.st.Processing, m.spin.View()))
	return b.String()
}

func (m model) bodyView(width int) string {
	if m.st.ShowHelp {
		focus := "history"
		if m.input.Focused() {
			focus = "input"
		}
		return m.overlay.View(focus, m.keys.sections())
	}
	if m.st.ShowDiff && len(m.st.History) >= 2 {
		last := len(m.st.History) - 1
		idx := m.st.Selected
		if idx >= last || idx < 0 {
			idx = last - 1
		}
		return m.diff.View(m.st.History[idx], m.st.History[last], idx, width)
	}
	return fmt.Sprintf("%s\n\n%s",
		m.result.View(m.st.Output, width),
		m.history.View(m.st.History, m.st.Selected, width))
}

func (m model) footerView() string {
	return m.styles.status.Render(m.status.View(m.st)) + "\n" + m.help.View(m.keys)
}
