// Package ui holds the terminal styles shared by the CLI and the setup wizard.
package ui

import "github.com/charmbracelet/lipgloss"

// Plain ANSI colors read well on both light and dark terminals.
var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	ItemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	SelectedStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))

	// kb match output
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Width(10)
	AnswerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Field renders a "label value" line.
func Field(label, value string) string {
	return LabelStyle.Render(label+":") + value
}
