package keymap

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dohr-michael/scicalc/internal/calc"
)

// KeyMap binds keyboard keys, as named by the terminal (e.g. "enter",
// "backspace", "q"), to tokens.
type KeyMap map[string]string

// File is the on-disk form of a key map override.
type File struct {
	Bindings map[string]string `yaml:"bindings"`
	Unbind   []string          `yaml:"unbind,omitempty"`
}

// DefaultKeyMap returns the built-in keyboard bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		"+": "+", "-": "-", "*": "*", "/": "/", ".": ".",
		"enter": "=", "=": "=", "backspace": "⌫", "esc": "C",
		"q": "√", "p": "%", "s": "sin", "c": "cos", "t": "tan",
		"l": "log₁₀", "n": "ln", "!": "n!", "^": "x^y", "r": "1/x",
		"m": "±", "e": "EE", "(": "(", ")": ")", "d": "DRG",
	}
	for d := '0'; d <= '9'; d++ {
		km[string(d)] = string(d)
	}
	return km
}

// LoadKeyMap reads a YAML override file and merges it over the defaults.
// An empty path or a missing file yields the defaults.
func LoadKeyMap(path string) (KeyMap, error) {
	km := DefaultKeyMap()
	if path == "" {
		return km, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return km, nil
		}
		return nil, fmt.Errorf("read keymap: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal keymap: %w", err)
	}
	for _, key := range f.Unbind {
		delete(km, key)
	}
	for key, token := range f.Bindings {
		if _, err := Parse(token); err != nil {
			return nil, fmt.Errorf("binding %q: %w", key, err)
		}
		km[key] = token
	}
	return km, nil
}

// Resolve returns the action bound to key.
func (km KeyMap) Resolve(key string) (calc.Action, bool) {
	token, ok := km[key]
	if !ok {
		return calc.Action{}, false
	}
	a, err := Parse(token)
	if err != nil {
		return calc.Action{}, false
	}
	return a, true
}

// KeysFor lists the keys bound to token, sorted.
func (km KeyMap) KeysFor(token string) []string {
	var keys []string
	for k, v := range km {
		if v == token {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Marshal renders the key map as a YAML override file.
func (km KeyMap) Marshal() ([]byte, error) {
	return yaml.Marshal(File{Bindings: km})
}
