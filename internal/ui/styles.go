package ui

import "github.com/charmbracelet/lipgloss"

var (
	cPrimary = lipgloss.Color("63")
	cAccent  = lipgloss.Color("205")
	cGood    = lipgloss.Color("42")
	cWarn    = lipgloss.Color("214")
	cBad     = lipgloss.Color("196")
	cMuted   = lipgloss.Color("244")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	mutedStyle    = lipgloss.NewStyle().Foreground(cMuted)
	warnStyle     = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	badgeStyle    = lipgloss.NewStyle().Foreground(cGood)
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(cMuted)
	buttonStyle   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	deleteStyle   = lipgloss.NewStyle().Foreground(cBad)
	cellStyle     = lipgloss.NewStyle().Width(cellWidth)
	selectedStyle = lipgloss.NewStyle().Width(cellWidth).Bold(true).Reverse(true)
)
