package main

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual styling for the interactive picker.
type Theme struct {
	Prompt   lipgloss.Color
	Selected lipgloss.Color
	Score    lipgloss.Color
	Error    lipgloss.Color
	Muted    lipgloss.Color
}

// DefaultTheme returns the default picker theme.
func DefaultTheme() Theme {
	return Theme{
		Prompt:   lipgloss.Color("12"),  // Blue
		Selected: lipgloss.Color("14"),  // Cyan
		Score:    lipgloss.Color("10"),  // Green
		Error:    lipgloss.Color("9"),   // Red
		Muted:    lipgloss.Color("240"), // Gray
	}
}
