package sessions

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/storage/dirstore"
)

func TestCreateGetRoundTrip(t *testing.T) {
	store := NewFileStoreFs(afero.NewMemMapFs(), "/tapes")

	s, err := store.Create("", "cli", "DEG")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !strings.HasPrefix(s.ID, "sess_") {
		t.Errorf("ID = %q, want sess_ prefix", s.ID)
	}
	if s.Status != SessionActive {
		t.Errorf("Status = %q, want %q", s.Status, SessionActive)
	}

	got, err := store.Get(s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != s.ID || got.Client != "cli" || got.Angle != "DEG" {
		t.Errorf("Get = %+v, want %+v", got, s)
	}
}

func TestCreateWithID(t *testing.T) {
	store := NewFileStoreFs(afero.NewMemMapFs(), "/tapes")

	s, err := store.Create("sess_fixed", "tui", "RAD")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID != "sess_fixed" {
		t.Errorf("ID = %q, want sess_fixed", s.ID)
	}
}

func TestGetNotFound(t *testing.T) {
	store := NewFileStoreFs(afero.NewMemMapFs(), "/tapes")

	_, err := store.Get("sess_nonexistent")
	if !errors.Is(err, dirstore.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAppendAndLoadTape(t *testing.T) {
	store := NewFileStoreFs(afero.NewMemMapFs(), "/tapes")
	id := NewID()

	tokens := []string{"2", "+", "3", "="}
	for _, tok := range tokens {
		e := events.NewTypedEventWithSession(events.SourceCLI, events.CalcActionPayload{Token: tok}, id)
		if err := store.AppendEvent(id, e); err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
	}

	loaded, err := store.LoadTape(id)
	if err != nil {
		t.Fatalf("LoadTape: %v", err)
	}
	if len(loaded) != len(tokens) {
		t.Fatalf("loaded %d events, want %d", len(loaded), len(tokens))
	}
	for i, e := range loaded {
		p, ok := events.GetCalcActionPayload(e)
		if !ok {
			t.Fatalf("event %d is not a calc action", i)
		}
		if p.Token != tokens[i] {
			t.Errorf("event %d token = %q, want %q", i, p.Token, tokens[i])
		}
		if e.SessionID != id {
			t.Errorf("event %d session = %q, want %q", i, e.SessionID, id)
		}
	}

	if !strings.HasSuffix(store.TapePath(id), filepath.Join(id, TapeFile)) {
		t.Errorf("TapePath = %q", store.TapePath(id))
	}
}

func TestClose(t *testing.T) {
	store := NewFileStoreFs(afero.NewMemMapFs(), "/tapes")

	s, err := store.Create("", "cli", "DEG")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Close(s.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := store.Get(s.ID)
	if err != nil {
		t.Fatalf("Get after Close: %v", err)
	}
	if got.Status != SessionClosed {
		t.Errorf("Status = %q, want %q", got.Status, SessionClosed)
	}
}

func TestListOrdering(t *testing.T) {
	store := NewFileStoreFs(afero.NewMemMapFs(), "/tapes")

	s1, err := store.Create("", "cli", "DEG")
	if err != nil {
		t.Fatalf("Create s1: %v", err)
	}
	if _, err := store.Create("", "cli", "DEG"); err != nil {
		t.Fatalf("Create s2: %v", err)
	}

	s1.UpdatedAt = time.Now().Add(time.Second)
	if err := store.UpdateMeta(s1); err != nil {
		t.Fatalf("UpdateMeta: %v", err)
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d sessions, want 2", len(list))
	}
	if list[0].ID != s1.ID {
		t.Errorf("list[0].ID = %q, want %q (most recent)", list[0].ID, s1.ID)
	}
}

func TestLoadTapeEmpty(t *testing.T) {
	store := NewFileStoreFs(afero.NewMemMapFs(), "/tapes")

	s, err := store.Create("", "cli", "DEG")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tape, err := store.LoadTape(s.ID)
	if err != nil {
		t.Fatalf("LoadTape: %v", err)
	}
	if len(tape) != 0 {
		t.Errorf("expected 0 events, got %d", len(tape))
	}
}

func TestFileStoreOnDisk(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	s, err := store.Create("", "tui", "DEG")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(store.TapePath(s.ID), dir) {
		t.Errorf("TapePath = %q, want under %q", store.TapePath(s.ID), dir)
	}
	if _, err := NewFileStore(dir).Get(s.ID); err != nil {
		t.Errorf("second store cannot read session: %v", err)
	}
}
