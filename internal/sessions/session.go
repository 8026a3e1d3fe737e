// Package sessions records calculator sessions: a meta.json with running
// totals next to the tape of events the session produced.
package sessions

import (
	"time"

	"github.com/dohr-michael/scicalc/internal/events"
)

// SessionStatus represents the lifecycle state of a session.
type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionClosed SessionStatus = "closed"
)

// TapeFile is the name of the per-session event log.
const TapeFile = "tape.jsonl"

// Session holds metadata about one calculator run.
type Session struct {
	ID        string        `json:"id"`
	Client    string        `json:"client"`
	Angle     string        `json:"angle"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Status    SessionStatus `json:"status"`
	Steps     int           `json:"steps"`
	Errors    int           `json:"errors"`
	Display   string        `json:"display,omitempty"`
	Memory    string        `json:"memory,omitempty"`
}

// Store defines the persistence interface for sessions.
type Store interface {
	Create(id, client, angle string) (*Session, error)
	Get(id string) (*Session, error)
	List() ([]*Session, error)
	UpdateMeta(s *Session) error
	Close(id string) error
	AppendEvent(sessionID string, e events.Event) error
	LoadTape(sessionID string) ([]events.Event, error)
	TapePath(sessionID string) string
}
