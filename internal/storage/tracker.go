package storage

import (
	"log/slog"
	"sync"

	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/sessions"
)

// SessionTracker subscribes to session and calc events and keeps each
// session's meta.json totals up to date.
type SessionTracker struct {
	mu          sync.Mutex
	store       sessions.Store
	inError     map[string]bool
	unsubscribe func()
}

// NewSessionTracker creates a SessionTracker listening on bus.
func NewSessionTracker(bus *events.Bus, store sessions.Store) *SessionTracker {
	st := &SessionTracker{
		store:   store,
		inError: make(map[string]bool),
	}
	st.unsubscribe = bus.SubscribeOrdered(st.handleEvent,
		events.EventSessionCreated,
		events.EventCalcAction,
		events.EventSessionClosed,
	)
	return st
}

// Close unsubscribes the tracker from the event bus.
func (st *SessionTracker) Close() {
	if st.unsubscribe != nil {
		st.unsubscribe()
	}
}

func (st *SessionTracker) handleEvent(e events.Event) {
	if e.SessionID == "" {
		return
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	switch e.Type {
	case events.EventSessionCreated:
		payload, _ := events.GetSessionCreatedPayload(e)
		if _, err := st.store.Create(e.SessionID, payload.Client, payload.Angle); err != nil {
			slog.Error("session tracker: create session", "session_id", e.SessionID, "error", err)
		}

	case events.EventCalcAction:
		payload, ok := events.GetCalcActionPayload(e)
		if !ok {
			return
		}
		sess, err := st.store.Get(e.SessionID)
		if err != nil {
			slog.Debug("session tracker: session not found", "session_id", e.SessionID, "error", err)
			return
		}

		sess.Steps++
		// An error marker can stay on screen for several keys; count it once.
		failed := payload.Error != ""
		if failed && !st.inError[e.SessionID] {
			sess.Errors++
		}
		st.inError[e.SessionID] = failed

		sess.Display = payload.Display
		sess.Memory = payload.Memory
		sess.Angle = payload.Angle
		sess.UpdatedAt = e.Timestamp
		if err := st.store.UpdateMeta(sess); err != nil {
			slog.Error("session tracker: update meta", "session_id", e.SessionID, "error", err)
		}

	case events.EventSessionClosed:
		delete(st.inError, e.SessionID)
		if err := st.store.Close(e.SessionID); err != nil {
			slog.Debug("session tracker: close session", "session_id", e.SessionID, "error", err)
		}
	}
}
