package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the presenter bindings. Slide keys are forwarded to the mounted slide.
type KeyMap struct {
	Next     key.Binding
	Previous key.Binding
	First    key.Binding
	Last     key.Binding
	Nav      key.Binding
	Notes    key.Binding
	Advance  key.Binding
	Reset    key.Binding
	AutoPlay key.Binding
	Mode     key.Binding
	Scenario key.Binding
	Select   key.Binding
	Execute  key.Binding
	Approve  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the presenter bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", " ", "space", "l"),
			key.WithHelp("→/space", "next slide"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous slide"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "first slide"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "last slide"),
		),
		Nav: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "slide list"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "speaker notes"),
		),
		Advance: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run / step"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		AutoPlay: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto-play"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "next mode"),
		),
		Scenario: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "next scenario"),
		),
		Select: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "focus node"),
		),
		Execute: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "execute"),
		),
		Approve: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "approve"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Advance, k.Nav, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.First, k.Last, k.Nav},
		{k.Advance, k.Reset, k.AutoPlay, k.Select},
		{k.Mode, k.Scenario, k.Execute, k.Approve},
		{k.Notes, k.Help, k.Quit},
	}
}
