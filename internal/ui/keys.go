package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap describes the browse bindings for the help views. Matching itself
// happens in the input modes.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Open       key.Binding
	Omnibox    key.Binding
	Back       key.Binding
	NewSession key.Binding
	Pager      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "first"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "last"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/^u", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/^d", "scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open / follow / edit"),
		),
		Omnibox: key.NewBinding(
			key.WithKeys("/", "i", "tab", "esc"),
			key.WithHelp("/", "search or URL"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "h", "left", "backspace"),
			key.WithHelp("b", "back to results"),
		),
		NewSession: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "new session"),
		),
		Pager: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "page in pager"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Omnibox, k.Open, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Open, k.Omnibox, k.Back},
		{k.NewSession, k.Pager, k.Help, k.Quit},
	}
}

// withPage enables the bindings that only make sense while a page is shown
func (k keyMap) withPage(showing bool) keyMap {
	k.Back.SetEnabled(showing)
	k.Pager.SetEnabled(showing)
	return k
}
