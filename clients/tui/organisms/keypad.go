package organisms

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/scicalc/clients/tui/atoms"
	"github.com/dohr-michael/scicalc/internal/calc"
	"github.com/dohr-michael/scicalc/internal/keymap"
)

// KeyWidth is the cell width of one key cap.
const KeyWidth = 7

// KeypadStyles groups the key cap styles by key family.
type KeypadStyles struct {
	Digit    lipgloss.Style
	Operator lipgloss.Style
	Function lipgloss.Style
	Memory   lipgloss.Style
	Active   lipgloss.Style
}

type keyCell struct {
	label  string
	action calc.Action
	ok     bool
}

// Keypad renders the button grid and highlights the last pressed key.
type Keypad struct {
	rows      [][]keyCell
	active    calc.Action
	hasActive bool
	styles    KeypadStyles
}

// NewKeypad builds a keypad from rows of labels. Labels that do not parse
// are drawn but never highlighted.
func NewKeypad(layout [][]string, styles KeypadStyles) Keypad {
	rows := make([][]keyCell, len(layout))
	for i, row := range layout {
		rows[i] = make([]keyCell, len(row))
		for j, label := range row {
			a, err := keymap.Parse(label)
			rows[i][j] = keyCell{label: label, action: a, ok: err == nil}
		}
	}
	return Keypad{rows: rows, styles: styles}
}

// SetActive marks a as the last pressed key.
func (k *Keypad) SetActive(a calc.Action) {
	k.active = a
	k.hasActive = true
}

// Active returns the highlighted label, if any.
func (k Keypad) Active() (string, bool) {
	if !k.hasActive {
		return "", false
	}
	for _, row := range k.rows {
		for _, cell := range row {
			if cell.ok && cell.action == k.active {
				return cell.label, true
			}
		}
	}
	return "", false
}

// Width returns the rendered width of the widest row.
func (k Keypad) Width() int {
	w := 0
	for _, row := range k.rows {
		if len(row)*KeyWidth > w {
			w = len(row) * KeyWidth
		}
	}
	return w
}

// View renders the grid.
func (k Keypad) View() string {
	lines := make([]string, len(k.rows))
	for i, row := range k.rows {
		caps := make([]string, len(row))
		for j, cell := range row {
			caps[j] = atoms.KeyCap(cell.label, KeyWidth, k.styleFor(cell))
		}
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, caps...)
	}
	return strings.Join(lines, "\n")
}

func (k Keypad) styleFor(cell keyCell) lipgloss.Style {
	if !cell.ok {
		return k.styles.Digit
	}
	if k.hasActive && cell.action == k.active {
		return k.styles.Active
	}
	switch cell.action.Kind {
	case calc.KindBinary, calc.KindEquals, calc.KindClear, calc.KindBackspace, calc.KindNegate:
		return k.styles.Operator
	case calc.KindFunction, calc.KindConstant, calc.KindToggleAngle:
		return k.styles.Function
	case calc.KindMemory:
		return k.styles.Memory
	default:
		return k.styles.Digit
	}
}
