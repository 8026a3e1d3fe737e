package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_FiresOnWatchedFile(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "config.jsonc")
	if err := os.WriteFile(watched, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 8)
	w, err := NewWatcher([]string{watched}, func() { fired <- struct{}{} })
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.SetDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(watched, []byte(`{"tui": {"history": 9}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not fire")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "keys.yaml")

	var calls atomic.Int32
	w, err := NewWatcher([]string{watched}, func() { calls.Add(1) })
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.SetDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if n := calls.Load(); n != 0 {
		t.Errorf("onChange called %d times for an unwatched file", n)
	}
}

func TestWatcher_SkipsMissingDir(t *testing.T) {
	w, err := NewWatcher([]string{filepath.Join(t.TempDir(), "nope", "config.jsonc")}, func() {})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Errorf("Run: %v", err)
	}
}
