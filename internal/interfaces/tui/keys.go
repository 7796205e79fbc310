package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Demo     key.Binding
	Panel    key.Binding
	Left     key.Binding
	Right    key.Binding
	Deselect key.Binding
	Up       key.Binding
	Down     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Demo, k.Panel, k.Left, k.Right, k.Deselect}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Demo, k.Panel},
		{k.Left, k.Right, k.Deselect, k.Up, k.Down},
	}
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Demo:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "demo")),
	Panel:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "panel")),
	Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev fish")),
	Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next fish")),
	Deselect: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "scroll")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "scroll")),
}
