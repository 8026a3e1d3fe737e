package events

import (
	"encoding/json"
	"time"

	"github.com/dohr-michael/scicalc/internal/calc"
)

// EventPayload is the interface all typed payloads implement.
type EventPayload interface {
	EventType() EventType
}

// =============================================================================
// CALCULATOR EVENTS
// =============================================================================

// CalcActionPayload records one key press and what the calculator showed
// right after it. A sequence of these is a tape.
type CalcActionPayload struct {
	Token   string `json:"token"`
	Display string `json:"display"`
	Memory  string `json:"memory,omitempty"`
	Error   string `json:"error,omitempty"`
	Angle   string `json:"angle"`
}

func (CalcActionPayload) EventType() EventType { return EventCalcAction }

// CalcActionFromStep converts an engine step into its event payload.
func CalcActionFromStep(step calc.Step) CalcActionPayload {
	p := CalcActionPayload{
		Token:   step.Action.String(),
		Display: step.Output.Display,
		Memory:  step.Output.Memory,
		Angle:   step.Angle.String(),
	}
	if step.Err != nil {
		p.Error = step.Err.Error()
	}
	return p
}

// =============================================================================
// SESSION EVENTS
// =============================================================================

type SessionCreatedPayload struct {
	Client string `json:"client"`
	Angle  string `json:"angle"`
}

func (SessionCreatedPayload) EventType() EventType { return EventSessionCreated }

type SessionClosedPayload struct {
	Steps   int    `json:"steps"`
	Display string `json:"display"`
}

func (SessionClosedPayload) EventType() EventType { return EventSessionClosed }

// =============================================================================
// HELPERS
// =============================================================================

// NewTypedEvent creates an event from a typed payload.
func NewTypedEvent(source EventSource, payload EventPayload) Event {
	return Event{
		ID:        generateEventID(),
		Type:      payload.EventType(),
		Timestamp: time.Now(),
		Source:    source,
		Payload:   toMap(payload),
	}
}

// NewTypedEventWithSession creates an event from a typed payload with session context.
func NewTypedEventWithSession(source EventSource, payload EventPayload, sessionID string) Event {
	e := NewTypedEvent(source, payload)
	e.SessionID = sessionID
	return e
}

func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// ExtractPayload decodes an event payload back into its typed form. It
// reports false when the event type does not match T.
func ExtractPayload[T EventPayload](e Event) (T, bool) {
	var zero T
	if e.Type != zero.EventType() {
		return zero, false
	}
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return zero, false
	}
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return zero, false
	}
	return result, true
}

func GetCalcActionPayload(e Event) (CalcActionPayload, bool) {
	return ExtractPayload[CalcActionPayload](e)
}

func GetSessionCreatedPayload(e Event) (SessionCreatedPayload, bool) {
	return ExtractPayload[SessionCreatedPayload](e)
}

func GetSessionClosedPayload(e Event) (SessionClosedPayload, bool) {
	return ExtractPayload[SessionClosedPayload](e)
}
