package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Cancel     key.Binding
	Reevaluate key.Binding
	Fade       key.Binding
	Slide      key.Binding
	Weather    key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:       key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next theme")),
		Prev:       key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "previous theme")),
		Cancel:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel blend")),
		Reevaluate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reevaluate")),
		Fade:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fade")),
		Slide:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "slide")),
		Weather:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weather")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Cancel, k.Reevaluate, k.Fade, k.Slide, k.Weather, k.Quit}
}
