package tui

import (
	"github.com/dohr-michael/scicalc/internal/config"
	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/keymap"
)

// CalcActionMsg carries a calc.action event seen on the bus.
type CalcActionMsg struct {
	SessionID string
	Payload   events.CalcActionPayload
}

// SessionClosedMsg signals that the session ended elsewhere.
type SessionClosedMsg struct {
	SessionID string
}

// ReloadRequestMsg asks the keypad to reload its config and key map, as
// ctrl+r does. The file watcher sends it.
type ReloadRequestMsg struct{}

// reloadedMsg carries the outcome of a ctrl+r reload.
type reloadedMsg struct {
	cfg     *config.Config
	keys    keymap.KeyMap
	changed []string
	err     error
}

// busClosedMsg is sent when the event subscription ends.
type busClosedMsg struct{}
