// Package tui provides the terminal keypad for the calculator engine.
package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors (light/dark terminal detection).
var (
	ColorDisplay  = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	ColorOperator = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorFunction = lipgloss.AdaptiveColor{Light: "#6B21A8", Dark: "#D8A6FF"}
	ColorMemory   = lipgloss.AdaptiveColor{Light: "#065F46", Dark: "#7EE2B8"}
	ColorActive   = lipgloss.AdaptiveColor{Light: "#0070F3", Dark: "#79C0FF"}
	ColorError    = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF6B6B"}
	ColorMuted    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorStatusBg = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
	ColorStatusFg = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"}
	ColorBorder   = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}
)

// Component styles.
var (
	DisplayStyle = lipgloss.NewStyle().
			Foreground(ColorDisplay).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Align(lipgloss.Right)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	MemoryStyle = lipgloss.NewStyle().
			Foreground(ColorMemory).
			Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorDisplay).
			Align(lipgloss.Center)

	OperatorKeyStyle = KeyStyle.
				Foreground(ColorOperator).
				Bold(true)

	FunctionKeyStyle = KeyStyle.
				Foreground(ColorFunction)

	MemoryKeyStyle = KeyStyle.
			Foreground(ColorMemory)

	ActiveKeyStyle = KeyStyle.
			Foreground(ColorStatusBg).
			Background(ColorActive).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorStatusBg).
			Foreground(ColorStatusFg).
			Padding(0, 1)

	HistoryBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)
)
