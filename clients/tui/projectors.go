package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dohr-michael/scicalc/internal/events"
)

// Project converts a bus event into a typed tea.Msg.
// Returns nil for events that don't map to a TUI message.
func Project(e events.Event) tea.Msg {
	switch e.Type {
	case events.EventCalcAction:
		payload, ok := events.GetCalcActionPayload(e)
		if !ok {
			return nil
		}
		return CalcActionMsg{SessionID: e.SessionID, Payload: payload}
	case events.EventSessionClosed:
		return SessionClosedMsg{SessionID: e.SessionID}
	default:
		return nil
	}
}

// waitForEvent blocks on ch until an event projects to a message.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		for e := range ch {
			if msg := Project(e); msg != nil {
				return msg
			}
		}
		return busClosedMsg{}
	}
}
