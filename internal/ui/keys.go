package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Send      key.Binding
	News      key.Binding
	Up        key.Binding
	Down      key.Binding
	Submit    key.Binding
	Close     key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Send:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "send money")),
	News:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "news")),
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
}
