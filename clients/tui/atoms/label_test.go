package atoms

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestKeyCapWidth(t *testing.T) {
	got := KeyCap("sin", 7, lipgloss.NewStyle().Align(lipgloss.Center))
	if w := lipgloss.Width(got); w != 7 {
		t.Errorf("width = %d, want 7 (%q)", w, got)
	}
}
