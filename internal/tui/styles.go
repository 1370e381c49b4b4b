package tui

import "github.com/charmbracelet/lipgloss"

// maxFormWidth keeps forms readable on wide terminals.
const maxFormWidth = 90

var (
	titleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	activeStepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Background(lipgloss.Color("236")).Padding(0, 1).Bold(true)
	inactiveStepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)

	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
