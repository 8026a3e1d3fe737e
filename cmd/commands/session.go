package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/scicalc/internal/calc"
	"github.com/dohr-michael/scicalc/internal/config"
	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/sessions"
	"github.com/dohr-michael/scicalc/internal/storage"
)

// setupLogging installs the stderr handler used by the line commands.
func setupLogging(cmd *cli.Command) {
	if cmd.Bool("debug") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

// loadConfig reads the --config file, falling back to defaults when it is missing.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// calcSession wires one engine run to the event bus and, when recording,
// to a tape on disk.
type calcSession struct {
	ctx     context.Context
	id      string
	source  events.EventSource
	bus     *events.Bus
	store   *sessions.FileStore
	tape    *storage.TapeLogger
	tracker *storage.SessionTracker
}

func openSession(ctx context.Context, cfg *config.Config, source events.EventSource, record bool, angle calc.AngleUnit) *calcSession {
	s := &calcSession{
		ctx:    ctx,
		id:     sessions.NewID(),
		source: source,
		bus:    events.NewBus(cfg.Events.BufferSize),
	}
	if record {
		s.store = sessions.NewFileStore(cfg.Tape.Dir)
		s.tape = storage.NewTapeLogger(s.bus, s.store)
		s.tracker = storage.NewSessionTracker(s.bus, s.store)
	}

	s.publish(events.SessionCreatedPayload{Client: string(source), Angle: angle.String()})
	slog.Debug("session opened", "session_id", s.id, "source", source, "record", record)
	return s
}

// publish waits for room on the bus so a tape never misses a step.
func (s *calcSession) publish(p events.EventPayload) {
	e := events.NewTypedEventWithSession(s.source, p, s.id)
	if err := s.bus.PublishAsync(s.ctx, e); err != nil {
		slog.Warn("event not published", "type", e.Type, "session_id", s.id, "error", err)
	}
}

// observer publishes every engine step on the bus.
func (s *calcSession) observer() calc.Observer {
	return func(step calc.Step) {
		s.publish(events.CalcActionFromStep(step))
	}
}

// close publishes session.closed and waits until the tape has everything.
// It still runs after ctx is cancelled so an interrupted session is closed.
func (s *calcSession) close(steps int, out calc.Output) {
	s.ctx = context.WithoutCancel(s.ctx)
	s.publish(events.SessionClosedPayload{Steps: steps, Display: out.Display})
	s.bus.Close()
	if s.tape != nil {
		s.tape.Close()
		s.tracker.Close()
		slog.Debug("tape written", "path", s.store.TapePath(s.id))
	}
}

// writeOutput prints the display, tab-separated from the memory indicator
// when one is shown.
func writeOutput(w io.Writer, out calc.Output) {
	if out.Memory != "" {
		fmt.Fprintf(w, "%s\t%s\n", out.Display, out.Memory)
		return
	}
	fmt.Fprintln(w, out.Display)
}

// writeStep prints one traced step.
func writeStep(w io.Writer, step calc.Step) {
	line := fmt.Sprintf("%-6s %s", step.Action, step.Output.Display)
	if step.Output.Memory != "" {
		line += "  [" + step.Output.Memory + "]"
	}
	fmt.Fprintln(w, line)
}
