package calc

import "log/slog"

// Step describes one dispatched action, as seen by observers.
type Step struct {
	Action Action
	Output Output
	Angle  AngleUnit
	Err    error
}

// Observer is notified after every dispatch.
type Observer func(Step)

// Option configures an Engine.
type Option func(*Engine)

// WithAngleUnit sets the unit the engine starts in.
func WithAngleUnit(u AngleUnit) Option {
	return func(e *Engine) { e.state.Angle = u }
}

// WithLogger sets the logger used for dispatch traces.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithObserver registers fn to receive every step.
func WithObserver(fn Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, fn) }
}

// Engine holds a State between key presses for interactive clients.
type Engine struct {
	state     State
	steps     int
	logger    *slog.Logger
	observers []Observer
}

// NewEngine creates an engine in the power-on state.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		state:  NewState(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dispatch applies a to the current state and returns the new output.
func (e *Engine) Dispatch(a Action) Output {
	next, out := Apply(e.state, a)
	e.state = next
	e.steps++

	if next.Err != nil {
		e.logger.Debug("calc dispatch", "key", a.String(), "display", out.Display, "error", next.Err)
	} else {
		e.logger.Debug("calc dispatch", "key", a.String(), "display", out.Display)
	}

	step := Step{Action: a, Output: out, Angle: next.Angle, Err: next.Err}
	for _, fn := range e.observers {
		fn(step)
	}
	return out
}

// State returns a copy of the current state.
func (e *Engine) State() State { return e.state }

// Steps returns how many actions have been dispatched.
func (e *Engine) Steps() int { return e.steps }

// Output returns the current display output.
func (e *Engine) Output() Output { return e.state.Output() }
