package tui

import (
	"github.com/charmbracelet/bubbles/key"

	help "flashdigest/internal/tui/widgets/helpoverlay"
)

type keyMap struct {
	Submit key.Binding
	Mode   key.Binding
	Cancel key.Binding
	Focus  key.Binding
	Up     key.Binding
	Down   key.Binding
	Copy   key.Binding
	Diff   key.Binding
	Help   key.Binding
	Quit   key.Binding
	ForceQ key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "process")),
		Mode:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "summarize/transcribe")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel / leave input")),
		Focus:  key.NewBinding(key.WithKeys("i", "/"), key.WithHelp("i", "edit url")),
		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "older result")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "newer result")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy result")),
		Diff:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "compare with latest")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQ: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp and FullHelp satisfy help.KeyMap from bubbles.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Mode, k.Cancel, k.Copy, k.Help, k.ForceQ}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Mode, k.Cancel, k.Focus},
		{k.Up, k.Down, k.Copy, k.Diff},
		{k.Help, k.Quit, k.ForceQ},
	}
}

// sections feeds the help overlay.
func (k keyMap) sections() []help.Section {
	return []help.Section{
		{Title: "Form", Keys: []key.Binding{k.Submit, k.Mode, k.Cancel, k.Focus}},
		{Title: "History", Keys: []key.Binding{k.Up, k.Down, k.Copy, k.Diff}},
		{Title: "General", Keys: []key.Binding{k.Help, k.Quit, k.ForceQ}},
	}
}
