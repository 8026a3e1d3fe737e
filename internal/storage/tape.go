package storage

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/dohr-michael/scicalc/internal/calc"
	"github.com/dohr-michael/scicalc/internal/config"
	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/keymap"
	"github.com/dohr-michael/scicalc/internal/storage/dirstore"
)

// Tape is the recorded key presses of one session.
type Tape struct {
	SessionID string
	Angle     calc.AngleUnit
	Steps     []events.CalcActionPayload
}

// ReadTape loads the tape at path on the OS filesystem.
func ReadTape(path string) (*Tape, error) {
	return ReadTapeFrom(afero.NewOsFs(), path)
}

// ReadTapeFrom loads the tape at path on fs. Lines that are not calc actions are
// skipped except session.created, which supplies the starting angle unit.
// A malformed line fails the whole read.
func ReadTapeFrom(fs afero.Fs, path string) (*Tape, error) {
	evts, err := dirstore.ReadJSONL[events.Event](fs, path)
	if err != nil {
		return nil, fmt.Errorf("read tape: %w", err)
	}

	t := &Tape{Angle: calc.Degree}
	haveAngle := false
	for _, e := range evts {
		if t.SessionID == "" {
			t.SessionID = e.SessionID
		}
		switch e.Type {
		case events.EventSessionCreated:
			p, ok := events.GetSessionCreatedPayload(e)
			if !ok {
				continue
			}
			if u, err := config.ParseAngleUnit(p.Angle); err == nil {
				t.Angle = u
				haveAngle = true
			}
		case events.EventCalcAction:
			p, ok := events.GetCalcActionPayload(e)
			if !ok {
				return nil, fmt.Errorf("read tape: event %s: bad calc action payload", e.ID)
			}
			t.Steps = append(t.Steps, p)
		}
	}

	if !haveAngle && len(t.Steps) > 0 {
		t.Angle = startingAngle(t.Steps[0])
	}
	return t, nil
}

// startingAngle infers the unit before the first step from the unit
// recorded after it.
func startingAngle(first events.CalcActionPayload) calc.AngleUnit {
	u, err := config.ParseAngleUnit(first.Angle)
	if err != nil {
		return calc.Degree
	}
	if first.Token == calc.Act(calc.KindToggleAngle).String() {
		return u.Toggle()
	}
	return u
}

// Drift is a replayed step whose output differs from the recording.
type Drift struct {
	Step           int    `json:"step"`
	Token          string `json:"token"`
	Recorded       string `json:"recorded"`
	Replayed       string `json:"replayed"`
	RecordedMemory string `json:"recorded_memory,omitempty"`
	ReplayedMemory string `json:"replayed_memory,omitempty"`
}

func (d Drift) String() string {
	return fmt.Sprintf("step %d (%s): recorded %q, replayed %q", d.Step, d.Token, d.Recorded, d.Replayed)
}

// ReplayResult summarizes a replay.
type ReplayResult struct {
	Steps  int
	Drifts []Drift
	Final  calc.Output
}

// Replay re-dispatches every token of t through a fresh engine and compares
// each output with what was recorded. opts are applied after the tape's
// starting angle, so observers can be attached.
func Replay(t *Tape, opts ...calc.Option) (*ReplayResult, error) {
	engine := calc.NewEngine(append([]calc.Option{calc.WithAngleUnit(t.Angle)}, opts...)...)

	res := &ReplayResult{}
	for i, step := range t.Steps {
		a, err := keymap.Parse(step.Token)
		if err != nil {
			return nil, fmt.Errorf("replay step %d: %w", i+1, err)
		}
		out := engine.Dispatch(a)
		res.Steps++
		if out.Display != step.Display || out.Memory != step.Memory {
			res.Drifts = append(res.Drifts, Drift{
				Step:           i + 1,
				Token:          step.Token,
				Recorded:       step.Display,
				Replayed:       out.Display,
				RecordedMemory: step.Memory,
				ReplayedMemory: out.Memory,
			})
		}
	}
	res.Final = engine.Output()
	return res, nil
}
