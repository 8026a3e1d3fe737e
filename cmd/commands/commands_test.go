package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/keymap"
	"github.com/dohr-michael/scicalc/internal/sessions"
	"github.com/dohr-michael/scicalc/internal/storage"
)

// run executes the root command with SCICALC_PATH already pointed at a
// temp dir by the caller.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return runContext(t, context.Background(), stdin, args...)
}

func runContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.Writer = &out
	root.ErrWriter = &out
	root.Reader = strings.NewReader(stdin)
	err := root.Run(ctx, append([]string{"scicalc"}, args...))
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SCICALC_PATH", dir)
	return dir
}

func TestEvalArgs(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"separate tokens", []string{"eval", "2", "+", "3", "="}, "5\n"},
		{"compact line", []string{"eval", "12*3="}, "36\n"},
		{"memory indicator", []string{"eval", "5", "MS"}, "5\tM: 5\n"},
		{"divide by zero", []string{"eval", "1/0="}, "Error: Div by 0\n"},
		{"radians flag", []string{"eval", "--angle", "rad", "90", "sin"}, "0.8939966636\n"},
		{"degrees by default", []string{"eval", "90", "sin"}, "1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, "", tt.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvalStdin(t *testing.T) {
	isolate(t)

	got, err := run(t, "2 + 3 =\n\n# doubled\n* 2 =\n", "eval")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != "5\n10\n" {
		t.Errorf("got %q, want %q", got, "5\n10\n")
	}
}

func TestEvalStdinErrorNamesLine(t *testing.T) {
	isolate(t)

	_, err := run(t, "1 +\n\nfoo\n", "eval")
	if !errors.Is(err, keymap.ErrUnknownToken) {
		t.Fatalf("err = %v, want ErrUnknownToken", err)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("err = %q, want line 3", err)
	}
}

func TestEvalBadAngle(t *testing.T) {
	isolate(t)

	if _, err := run(t, "", "eval", "--angle", "grad", "1"); err == nil {
		t.Error("expected error for unknown angle unit")
	}
}

func TestEvalTrace(t *testing.T) {
	isolate(t)

	got, err := run(t, "", "eval", "--trace", "4", "√")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 2 steps + result: %q", len(lines), got)
	}
	if !strings.HasPrefix(lines[1], "√") || !strings.HasSuffix(lines[1], "2") {
		t.Errorf("trace line = %q", lines[1])
	}
	if lines[2] != "2" {
		t.Errorf("result = %q, want 2", lines[2])
	}
}

func TestRecordListAndReplay(t *testing.T) {
	dir := isolate(t)

	if _, err := run(t, "", "eval", "--record", "7", "MS", "*", "6", "="); err != nil {
		t.Fatalf("eval: %v", err)
	}

	list, err := sessions.NewFileStore(filepath.Join(dir, "tapes")).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("recorded %d sessions, want 1", len(list))
	}
	sess := list[0]
	if sess.Steps != 5 || sess.Display != "42" || sess.Status != sessions.SessionClosed {
		t.Errorf("session = %+v", sess)
	}

	out, err := run(t, "", "sessions", "list")
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	if !strings.Contains(out, sess.ID) || !strings.Contains(out, "cli") {
		t.Errorf("sessions list = %q", out)
	}

	out, err = run(t, "", "sessions", "show", sess.ID)
	if err != nil {
		t.Fatalf("sessions show: %v", err)
	}
	if n := strings.Count(out, "\n"); n != 5 {
		t.Errorf("sessions show printed %d lines, want 5: %q", n, out)
	}

	out, err = run(t, "", "replay", sess.ID)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !strings.Contains(out, "42\tM: 7") || !strings.Contains(out, "replayed 5 steps, no drift") {
		t.Errorf("replay = %q", out)
	}

	out, err = run(t, "", "replay", "--live", "--delay", "0s", sess.ID)
	if err != nil {
		t.Fatalf("replay --live: %v", err)
	}
	if !strings.Contains(out, "=      42  [M: 7]") || !strings.Contains(out, "replayed 5 steps, no drift") {
		t.Errorf("replay --live = %q", out)
	}
}

func TestRecordLongerThanBusBuffer(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.jsonc"), []byte(`{"events": {"buffer_size": 8}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	const lines = 100
	if _, err := run(t, strings.Repeat("1 + 2 =\n", lines), "eval", "--record"); err != nil {
		t.Fatalf("eval: %v", err)
	}

	store := sessions.NewFileStore(filepath.Join(dir, "tapes"))
	list, err := store.List()
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d sessions, %v", len(list), err)
	}
	sess := list[0]
	if sess.Steps != 4*lines || sess.Status != sessions.SessionClosed {
		t.Errorf("session steps=%d status=%s, want %d closed", sess.Steps, sess.Status, 4*lines)
	}

	tape, err := storage.ReadTape(store.TapePath(sess.ID))
	if err != nil {
		t.Fatalf("ReadTape: %v", err)
	}
	if len(tape.Steps) != 4*lines {
		t.Errorf("tape has %d steps, want %d", len(tape.Steps), 4*lines)
	}

	evts, err := store.LoadTape(sess.ID)
	if err != nil {
		t.Fatalf("LoadTape: %v", err)
	}
	if last := evts[len(evts)-1]; last.Type != events.EventSessionClosed {
		t.Errorf("last tape event = %s, want %s", last.Type, events.EventSessionClosed)
	}
}

func TestReplayLiveStopsOnCancel(t *testing.T) {
	dir := isolate(t)

	if _, err := run(t, "", "eval", "--record", "1", "+", "2", "="); err != nil {
		t.Fatalf("eval: %v", err)
	}
	list, err := sessions.NewFileStore(filepath.Join(dir, "tapes")).List()
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d sessions, %v", len(list), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runContext(t, ctx, "", "replay", "--live", "--delay", "1h", list[0].ID)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestReplayDrift(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "edited.jsonl")
	var buf bytes.Buffer
	for _, p := range []events.CalcActionPayload{
		{Token: "2", Display: "2", Angle: "DEG"},
		{Token: "x²", Display: "5", Angle: "DEG"},
	} {
		data, err := json.Marshal(events.NewTypedEventWithSession(events.SourceCLI, p, "sess_edit"))
		if err != nil {
			t.Fatal(err)
		}
		buf.Write(append(data, '\n'))
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "replay", path)
	if !errors.Is(err, ErrDrift) {
		t.Fatalf("err = %v, want ErrDrift", err)
	}
	if !strings.Contains(out, `step 2 (x²): recorded "5", replayed "4"`) {
		t.Errorf("replay = %q", out)
	}
}

func TestKeys(t *testing.T) {
	dir := isolate(t)

	if err := os.WriteFile(filepath.Join(dir, "keys.yaml"), []byte("bindings:\n  x: \"*\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "keys")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !strings.Contains(out, "bindings:") || !strings.Contains(out, `x: '*'`) {
		t.Errorf("keys = %q", out)
	}

	out, err = run(t, "", "keys", "--layout")
	if err != nil {
		t.Fatalf("keys --layout: %v", err)
	}
	if first := strings.SplitN(out, "\n", 2)[0]; first != "sin\tcos\ttan\tπ\te\tn!" {
		t.Errorf("first layout row = %q", first)
	}
}
