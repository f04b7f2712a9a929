package tui

import "github.com/charmbracelet/lipgloss"

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	Dim = lipgloss.NewStyle().
		Foreground(lipgloss.Color("242"))

	Running = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82"))

	Warn = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220"))

	Value = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("213"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 2)
)
