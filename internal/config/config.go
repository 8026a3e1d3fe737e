// Package config loads scicalc settings.
package config

import (
	"fmt"
	"strings"

	"github.com/dohr-michael/scicalc/internal/calc"
)

// Config is the root configuration for scicalc.
type Config struct {
	Engine EngineConfig `json:"engine"`
	Tape   TapeConfig   `json:"tape"`
	Events EventsConfig `json:"events"`
	Keymap KeymapConfig `json:"keymap"`
	TUI    TUIConfig    `json:"tui"`
}

// EngineConfig holds calculator engine settings.
type EngineConfig struct {
	Angle string `json:"angle_unit"` // "deg" or "rad"
}

// TapeConfig controls the JSONL record of key presses.
type TapeConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"` // default: $SCICALC_PATH/tapes
}

// EventsConfig holds event bus settings.
type EventsConfig struct {
	BufferSize int `json:"buffer_size"`
}

// KeymapConfig points at an optional YAML key binding override.
type KeymapConfig struct {
	File string `json:"file"` // default: $SCICALC_PATH/keys.yaml
}

// TUIConfig holds terminal keypad settings.
type TUIConfig struct {
	History int `json:"history"` // results kept on the on-screen tape
}

// ParseAngleUnit reads "deg"/"degree" or "rad"/"radian", case-insensitively.
func ParseAngleUnit(s string) (calc.AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees":
		return calc.Degree, nil
	case "rad", "radian", "radians":
		return calc.Radian, nil
	default:
		return calc.Degree, fmt.Errorf("unknown angle unit %q", s)
	}
}

// Unit returns the configured starting unit. Load has already validated it.
func (c EngineConfig) Unit() calc.AngleUnit {
	u, _ := ParseAngleUnit(c.Angle)
	return u
}
