package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the sidebar key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Enter       key.Binding
	Toggle      key.Binding
	CloseDir    key.Binding
	RootUp      key.Binding
	RootInto    key.Binding
	Rename      key.Binding
	NewFile     key.Binding
	Remove      key.Binding
	Select      key.Binding
	SelectAll   key.Binding
	ClearSelect key.Binding
	Yank        key.Binding
	Copy        key.Binding
	Move        key.Binding
	Paste       key.Binding
	Hidden      key.Binding
	Redraw      key.Binding
	GitRefresh  key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Toggle:      key.NewBinding(key.WithKeys("o", "l"), key.WithHelp("o", "toggle dir")),
		CloseDir:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "close dir")),
		RootUp:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "root to parent")),
		RootInto:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "root into dir")),
		Rename:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		NewFile:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new file")),
		Remove:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		Select:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		SelectAll:   key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "select all")),
		ClearSelect: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		Yank:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank path")),
		Copy:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Move:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "move")),
		Paste:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		Hidden:      key.NewBinding(key.WithKeys("."), key.WithHelp(".", "toggle hidden")),
		Redraw:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "redraw")),
		GitRefresh:  key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "git refresh")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
