package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	usedColor    = lipgloss.Color("#FFA500")
	freeColor    = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF4B4B")
	mutedColor   = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	stepStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	opStyle = lipgloss.NewStyle().
		Bold(true)

	// Arena bar segments
	usedBlockStyle = lipgloss.NewStyle().
			Background(usedColor).
			Foreground(lipgloss.Color("#1A1A1A"))

	freeBlockStyle = lipgloss.NewStyle().
			Background(freeColor).
			Foreground(lipgloss.Color("#1A1A1A"))

	emptyBarStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	chainStyle = lipgloss.NewStyle().
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)
)
