package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	search    key.Binding
	next      key.Binding
	add       key.Binding
	remove    key.Binding
	details   key.Binding
	close     key.Binding
	refresh   key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
		add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add favorite")),
		remove:    key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "remove favorite")),
		details:   key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter/v", "details")),
		close:     key.NewBinding(key.WithKeys("esc", "c", "enter"), key.WithHelp("esc", "close")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.search, k.next, k.add, k.remove, k.details},
		{k.back, k.refresh, k.quit},
	}
}
