package pager

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines pager keybindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	TOC      key.Binding
	Filter   key.Binding
	Select   key.Binding
	Back     key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap is the pager's standard bindings.
var DefaultKeyMap = KeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup/b", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn/space", "page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "bottom")),
	TOC:      key.NewBinding(key.WithKeys("t", "tab"), key.WithHelp("t", "contents")),
	Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter contents")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy section")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
