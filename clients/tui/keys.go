package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/dohr-michael/scicalc/internal/keymap"
)

// controlKeys are the bindings that drive the keypad itself rather than the
// calculator. They take precedence over the calculator key map.
type controlKeys struct {
	Quit   key.Binding
	Reload key.Binding
	Help   key.Binding

	calc []key.Binding
}

func newControlKeys(km keymap.KeyMap) controlKeys {
	return controlKeys{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload config"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
		calc: calcBindings(km),
	}
}

// calcBindings describes the calculator key map for the help view, one
// binding per token.
func calcBindings(km keymap.KeyMap) []key.Binding {
	tokens := make(map[string]bool)
	for _, token := range km {
		tokens[token] = true
	}
	sorted := make([]string, 0, len(tokens))
	for token := range tokens {
		sorted = append(sorted, token)
	}
	sort.Strings(sorted)

	bindings := make([]key.Binding, 0, len(sorted))
	for _, token := range sorted {
		keys := km.KeysFor(token)
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), token),
		))
	}
	return bindings
}

// ShortHelp implements help.KeyMap.
func (k controlKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Reload, k.Help}
}

// FullHelp implements help.KeyMap.
func (k controlKeys) FullHelp() [][]key.Binding {
	const perColumn = 8
	columns := [][]key.Binding{{k.Quit, k.Reload, k.Help}}
	for i := 0; i < len(k.calc); i += perColumn {
		end := i + perColumn
		if end > len(k.calc) {
			end = len(k.calc)
		}
		columns = append(columns, k.calc[i:end])
	}
	return columns
}
