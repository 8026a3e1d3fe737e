package organisms

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// InformationPanel displays the status bar: session, angle unit, key count
// and the last notice (reload result, unbound key).
type InformationPanel struct {
	sessionID string
	angle     string
	steps     int
	notice    string
	width     int
	style     lipgloss.Style
}

// NewInformationPanel creates a new status bar panel.
func NewInformationPanel(style lipgloss.Style) InformationPanel {
	return InformationPanel{style: style, angle: "DEG"}
}

// Setters

// SetSession updates the session ID.
func (p *InformationPanel) SetSession(id string) { p.sessionID = id }

// SetAngle updates the angle unit badge.
func (p *InformationPanel) SetAngle(angle string) { p.angle = angle }

// SetSteps updates the dispatched key count.
func (p *InformationPanel) SetSteps(n int) { p.steps = n }

// SetNotice replaces the transient notice; empty clears it.
func (p *InformationPanel) SetNotice(notice string) { p.notice = notice }

// SetWidth updates the rendering width.
func (p *InformationPanel) SetWidth(w int) { p.width = w }

// Getters

// SessionID returns the session ID.
func (p *InformationPanel) SessionID() string { return p.sessionID }

// Steps returns the number of dispatched keys.
func (p *InformationPanel) Steps() int { return p.steps }

// Notice returns the current notice.
func (p *InformationPanel) Notice() string { return p.notice }

// View renders the status bar.
func (p InformationPanel) View() string {
	sid := p.sessionID
	if len(sid) > 13 {
		sid = sid[:13]
	}

	sessStr := ""
	if sid != "" {
		sessStr = " | " + sid
	}

	noticeStr := ""
	if p.notice != "" {
		noticeStr = " | " + p.notice
	}

	bar := fmt.Sprintf(" %s | %s%s%s ", p.angle, formatSteps(p.steps), sessStr, noticeStr)
	return p.style.Width(p.width).Render(bar)
}

func formatSteps(n int) string {
	if n == 1 {
		return "1 key"
	}
	return fmt.Sprintf("%d keys", n)
}
