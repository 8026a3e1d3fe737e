package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/dohr-michael/scicalc/internal/calc"
	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/sessions"
)

func TestReadTapeAndReplay(t *testing.T) {
	store := sessions.NewFileStore(t.TempDir())
	id := record(t, store, calc.Radian,
		calc.Const(calc.ConstPi), calc.Binary(calc.OpDiv), calc.Digit(2), calc.Act(calc.KindEquals),
		calc.Unary(calc.FuncSin), calc.Memory(calc.MemAdd),
	)

	tape, err := ReadTape(store.TapePath(id))
	if err != nil {
		t.Fatalf("ReadTape: %v", err)
	}
	if tape.SessionID != id {
		t.Errorf("SessionID = %q, want %q", tape.SessionID, id)
	}
	if tape.Angle != calc.Radian {
		t.Errorf("Angle = %v, want RAD", tape.Angle)
	}
	if len(tape.Steps) != 6 {
		t.Fatalf("Steps = %d, want 6", len(tape.Steps))
	}

	res, err := Replay(tape)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(res.Drifts) != 0 {
		t.Errorf("unexpected drift: %v", res.Drifts)
	}
	if res.Steps != 6 {
		t.Errorf("replayed %d steps, want 6", res.Steps)
	}
	if res.Final.Display != "1" || res.Final.Memory != "M: 1" {
		t.Errorf("final = %+v", res.Final)
	}
}

func TestReplayReportsDrift(t *testing.T) {
	tape := &Tape{
		Angle: calc.Degree,
		Steps: []events.CalcActionPayload{
			{Token: "2", Display: "2"},
			{Token: "+", Display: "2"},
			{Token: "2", Display: "2"},
			{Token: "=", Display: "5"},
		},
	}

	res, err := Replay(tape)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(res.Drifts) != 1 {
		t.Fatalf("drifts = %v, want 1", res.Drifts)
	}
	d := res.Drifts[0]
	if d.Step != 4 || d.Recorded != "5" || d.Replayed != "4" {
		t.Errorf("drift = %+v", d)
	}
	if !strings.Contains(d.String(), "step 4 (=)") {
		t.Errorf("String() = %q", d.String())
	}
}

func TestReplayUnknownToken(t *testing.T) {
	tape := &Tape{Steps: []events.CalcActionPayload{{Token: "1"}, {Token: "bogus"}}}

	if _, err := Replay(tape); err == nil || !strings.Contains(err.Error(), "step 2") {
		t.Errorf("err = %v, want step 2 failure", err)
	}
}

func TestReadTapeInfersAngleWithoutSessionEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tape.jsonl")
	var buf []byte
	for _, p := range []events.CalcActionPayload{
		{Token: "DRG", Display: "0", Angle: "RAD"},
		{Token: "9", Display: "9", Angle: "RAD"},
	} {
		data, err := json.Marshal(events.NewTypedEvent(events.SourceCLI, p))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		buf = append(append(buf, data...), '\n')
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tape, err := ReadTape(path)
	if err != nil {
		t.Fatalf("ReadTape: %v", err)
	}
	if tape.Angle != calc.Degree {
		t.Errorf("Angle = %v, want DEG (toggled before the first recorded step)", tape.Angle)
	}
}

func TestReadTapeMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tape.jsonl")
	if err := os.WriteFile(path, []byte("{\"type\":\"calc.action\",\"payload\":{\"token\":\"1\"}}\n{oops\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := ReadTape(path)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v, want line 2 failure", err)
	}
}

func TestReadTapeFromMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := sessions.NewFileStoreFs(fs, "/tapes")
	id := record(t, store, calc.Degree, calc.Digit(9), calc.Unary(calc.FuncSqrt))

	tape, err := ReadTapeFrom(fs, store.TapePath(id))
	if err != nil {
		t.Fatalf("ReadTapeFrom: %v", err)
	}
	if len(tape.Steps) != 2 || tape.Steps[1].Display != "3" {
		t.Errorf("steps = %+v, want 9 then √ = 3", tape.Steps)
	}

	if _, err := ReadTape(store.TapePath(id)); err == nil {
		t.Error("ReadTape found an in-memory tape on disk")
	}
}
