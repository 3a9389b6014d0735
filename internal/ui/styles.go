package ui

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles used by the interactive shell.
type Styles struct {
	Base    lipgloss.Style
	Title   lipgloss.Style
	Active  lipgloss.Style
	Idle    lipgloss.Style
	Label   lipgloss.Style
	Hint    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles returns the shell styles for a dark or light terminal.
func NewStyles(dark bool) Styles {
	var (
		fg      = lipgloss.Color("#3c3836")
		muted   = lipgloss.Color("#7c6f64")
		green   = lipgloss.Color("#79740e")
		yellow  = lipgloss.Color("#b57614")
		red     = lipgloss.Color("#9d0006")
		accent  = lipgloss.Color("#076678")
		onBadge = lipgloss.Color("#fbf1c7")
	)

	if dark {
		fg = lipgloss.Color("#ebdbb2")
		muted = lipgloss.Color("#a89984")
		green = lipgloss.Color("#b8bb26")
		yellow = lipgloss.Color("#fabd2f")
		red = lipgloss.Color("#fb4934")
		accent = lipgloss.Color("#83a598")
		onBadge = lipgloss.Color("#282828")
	}

	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(onBadge)

	return Styles{
		Base:    lipgloss.NewStyle().Padding(1, 2).Foreground(fg),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Active:  badge.Background(green),
		Idle:    badge.Background(muted),
		Label:   lipgloss.NewStyle().Foreground(muted).Width(16),
		Hint:    lipgloss.NewStyle().Foreground(muted),
		Success: lipgloss.NewStyle().Foreground(green),
		Warning: lipgloss.NewStyle().Foreground(yellow),
		Error:   lipgloss.NewStyle().Foreground(red),
	}
}
