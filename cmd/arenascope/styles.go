package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Green for live data, amber for attention, grey for chrome.
var (
	accentColor = lipgloss.Color("#5AF78E")
	titleColor  = lipgloss.Color("#F3F99D")
	alertColor  = lipgloss.Color("#FF5C57")
	chromeColor = lipgloss.Color("#57606F")
	textColor   = lipgloss.Color("#E8E8E8")

	barBackground = lipgloss.Color("#202330")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(titleColor).
			Background(barBackground).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(chromeColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(chromeColor).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(chromeColor).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(chromeColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(alertColor).
			Bold(true).
			Padding(1, 2)
)

// Help overlay.
var (
	helpTitleStyle = headerStyle

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Width(12)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(textColor)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accentColor).
			Padding(1, 3)
)
