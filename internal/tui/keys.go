package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Back  key.Binding
	Quit  key.Binding
	Leave key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Back, k.Quit, k.Leave}}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "voltar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "sair"),
		),
		Leave: key.NewBinding(
			key.WithKeys("enter", "q", "esc"),
			key.WithHelp("enter", "sair"),
		),
	}
}
