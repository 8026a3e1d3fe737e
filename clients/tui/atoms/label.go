package atoms

import "github.com/charmbracelet/lipgloss"

// StyledLabel renders a short label (a key cap, a badge) with the given style.
func StyledLabel(label string, style lipgloss.Style) string {
	return style.Render(label)
}

// KeyCap renders label centered in a cell of the given width.
func KeyCap(label string, width int, style lipgloss.Style) string {
	return StyledLabel(label, style.Width(width))
}
