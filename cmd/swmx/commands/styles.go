package commands

import "github.com/charmbracelet/lipgloss"

// Colors degrade to plain text when output is not a terminal.
var (
	accent = lipgloss.Color("#00ff9f")
	dim    = lipgloss.Color("#6e7681")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Foreground(dim).TabWidth(lipgloss.NoTabConversion)
)
