package storage

import (
	"log/slog"

	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/sessions"
)

// TapeLogger persists calculator and session events to the session's tape.
type TapeLogger struct {
	store       sessions.Store
	unsubscribe func()
}

// NewTapeLogger creates a TapeLogger that appends every calc.action and
// session event to its session's tape. Delivery is ordered, so the tape
// keeps key press order.
func NewTapeLogger(bus *events.Bus, store sessions.Store) *TapeLogger {
	tl := &TapeLogger{store: store}
	tl.unsubscribe = bus.SubscribeOrdered(tl.handleEvent,
		events.EventSessionCreated,
		events.EventCalcAction,
		events.EventSessionClosed,
	)
	return tl
}

// Close unsubscribes the logger from the event bus.
func (tl *TapeLogger) Close() {
	if tl.unsubscribe != nil {
		tl.unsubscribe()
	}
}

func (tl *TapeLogger) handleEvent(e events.Event) {
	// A tape belongs to a session; unsessioned events have nowhere to go.
	if e.SessionID == "" {
		return
	}
	if err := tl.store.AppendEvent(e.SessionID, e); err != nil {
		slog.Warn("tape logger: append event", "session_id", e.SessionID, "type", e.Type, "error", err)
	}
}
