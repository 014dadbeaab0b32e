// Package tui implements the Bubble Tea feed viewer for magazine.
package tui

import "github.com/charmbracelet/lipgloss"

// Icons and symbols.
const (
	iconDot          = "•"
	iconToastSuccess = "✓"
	iconToastError   = "✗"
	iconToastInfo    = "ℹ"
	iconHeart        = "♥"
	iconHeartEmpty   = "♡"
)

var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}
	colorError   = lipgloss.AdaptiveColor{Light: "#be123c", Dark: "#fb7185"}
	colorInfo    = lipgloss.AdaptiveColor{Light: "#0369a1", Dark: "#38bdf8"}
	colorAccent  = lipgloss.Color("#ff6b6b")
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
)

var (
	toastBaseStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	toastSuccessStyle = toastBaseStyle.BorderForeground(colorSuccess)
	toastErrorStyle   = toastBaseStyle.BorderForeground(colorError)
	toastInfoStyle    = toastBaseStyle.BorderForeground(colorInfo)

	toastSuccessIconStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	toastErrorIconStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	toastInfoIconStyle    = lipgloss.NewStyle().Foreground(colorInfo).Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(0, 1)

	postTitleStyle = lipgloss.NewStyle().Bold(true)
	postMetaStyle  = lipgloss.NewStyle().Foreground(colorMuted)

	postStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorMuted).
			PaddingLeft(1).
			MarginBottom(1)

	postSelectedStyle = postStyle.BorderForeground(colorAccent)

	commentStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorMuted).
			MarginLeft(2).
			PaddingLeft(1)

	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError).PaddingLeft(1)

	likedStyle = lipgloss.NewStyle().Foreground(colorAccent)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
