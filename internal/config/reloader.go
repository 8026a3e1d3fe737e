package config

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Reloader re-reads the config on demand, swaps it atomically and
// notifies listeners.
type Reloader struct {
	configPath string
	dotenvPath string
	current    atomic.Pointer[Config]
	mu         sync.Mutex // serializes reload
	listeners  []func(*Config)
}

// NewReloader creates a Reloader with the given initial config.
func NewReloader(configPath, dotenvPath string, initial *Config) *Reloader {
	r := &Reloader{
		configPath: configPath,
		dotenvPath: dotenvPath,
	}
	r.current.Store(initial)
	return r
}

// Current returns the current config.
func (r *Reloader) Current() *Config {
	return r.current.Load()
}

// OnReload registers a callback invoked after successful reload.
func (r *Reloader) OnReload(fn func(*Config)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Reload re-reads the .env file and the config, then notifies listeners.
// A deleted config file reloads as defaults. On error the current config
// is kept.
func (r *Reloader) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ReloadDotenv(r.dotenvPath); err != nil {
		return fmt.Errorf("reload dotenv: %w", err)
	}

	cfg, err := LoadOrDefault(r.configPath)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}

	prev := r.current.Swap(cfg)
	slog.Info("config reloaded", "path", r.configPath, "changed", Changed(prev, cfg))

	for _, fn := range r.listeners {
		fn(cfg)
	}
	return nil
}

// Changed lists the settings that differ between two configs, by their
// JSONC key. A nil config compares as the defaults.
func Changed(prev, next *Config) []string {
	if prev == nil {
		prev = Default()
	}
	if next == nil {
		next = Default()
	}

	var keys []string
	diff := func(key string, differs bool) {
		if differs {
			keys = append(keys, key)
		}
	}
	diff("engine.angle_unit", prev.Engine.Unit() != next.Engine.Unit())
	diff("tape.enabled", prev.Tape.Enabled != next.Tape.Enabled)
	diff("tape.dir", prev.Tape.Dir != next.Tape.Dir)
	diff("events.buffer_size", prev.Events.BufferSize != next.Events.BufferSize)
	diff("keymap.file", prev.Keymap.File != next.Keymap.File)
	diff("tui.history", prev.TUI.History != next.TUI.History)
	return keys
}
