package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#38bdf8")
	colorMuted   = lipgloss.Color("#6c7086")
	colorText    = lipgloss.Color("#cdd6f4")
	colorWarning = lipgloss.Color("#f38ba8")
	colorOK      = lipgloss.Color("#a6e3a1")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subtleStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	noticeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e1e2e")).Background(colorWarning).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
	blockStyle    = lipgloss.NewStyle().Foreground(colorText)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	activeColumnStyle = columnStyle.BorderForeground(colorAccent)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorOK).
			Padding(0, 1)
)
