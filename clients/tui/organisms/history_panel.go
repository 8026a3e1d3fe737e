package organisms

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HistoryEntry is one finished calculation.
type HistoryEntry struct {
	Token   string
	Display string
	Failed  bool
}

// HistoryPanel keeps the last few results, newest last.
type HistoryPanel struct {
	entries []HistoryEntry
	size    int
	width   int
	style   lipgloss.Style
	muted   lipgloss.Style
	errors  lipgloss.Style
}

// NewHistoryPanel creates a panel holding up to size entries.
func NewHistoryPanel(size int, style, muted, errors lipgloss.Style) HistoryPanel {
	return HistoryPanel{size: size, style: style, muted: muted, errors: errors}
}

// Add appends an entry, dropping the oldest beyond the panel size.
func (p *HistoryPanel) Add(e HistoryEntry) {
	p.entries = append(p.entries, e)
	if over := len(p.entries) - p.size; over > 0 {
		p.entries = append([]HistoryEntry(nil), p.entries[over:]...)
	}
}

// Reset replaces the entries, keeping the newest that fit.
func (p *HistoryPanel) Reset(entries []HistoryEntry) {
	p.entries = nil
	for _, e := range entries {
		p.Add(e)
	}
}

// SetSize changes how many entries are kept.
func (p *HistoryPanel) SetSize(n int) {
	if n < 1 {
		n = 1
	}
	p.size = n
	if over := len(p.entries) - n; over > 0 {
		p.entries = append([]HistoryEntry(nil), p.entries[over:]...)
	}
}

// SetWidth sets the outer width.
func (p *HistoryPanel) SetWidth(w int) { p.width = w }

// Entries returns the kept entries, oldest first.
func (p HistoryPanel) Entries() []HistoryEntry { return p.entries }

// View renders the panel; it always shows size lines so the layout is stable.
func (p HistoryPanel) View() string {
	lines := make([]string, 0, p.size)
	for i := 0; i < p.size-len(p.entries); i++ {
		lines = append(lines, p.muted.Render("·"))
	}
	for _, e := range p.entries {
		line := fmt.Sprintf("%s  %s", p.muted.Render(e.Token), e.Display)
		if e.Failed {
			line = fmt.Sprintf("%s  %s", p.muted.Render(e.Token), p.errors.Render(e.Display))
		}
		lines = append(lines, line)
	}
	w := p.width - p.style.GetHorizontalBorderSize()
	if w < 1 {
		w = 1
	}
	return p.style.Width(w).Render(strings.Join(lines, "\n"))
}
