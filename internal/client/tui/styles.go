package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Reverse(true)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	activeStep    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	inactiveStep  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	alertStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F25D94")).
			Padding(1, 2)
)
