// Package keymap translates key presses and typed tokens into calculator
// actions.
package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dohr-michael/scicalc/internal/calc"
)

var ErrUnknownToken = errors.New("unknown token")

// aliases maps every accepted spelling of a key to its action. The keypad
// label (calc.Action.String) is always one of them.
var aliases = map[string]calc.Action{
	".": calc.Act(calc.KindDecimal),

	"C":     calc.Act(calc.KindClear),
	"AC":    calc.Act(calc.KindClear),
	"clear": calc.Act(calc.KindClear),

	"⌫":         calc.Act(calc.KindBackspace),
	"bs":        calc.Act(calc.KindBackspace),
	"back":      calc.Act(calc.KindBackspace),
	"backspace": calc.Act(calc.KindBackspace),

	"±":   calc.Act(calc.KindNegate),
	"+/-": calc.Act(calc.KindNegate),
	"neg": calc.Act(calc.KindNegate),

	"+":   calc.Binary(calc.OpAdd),
	"-":   calc.Binary(calc.OpSub),
	"*":   calc.Binary(calc.OpMul),
	"×":   calc.Binary(calc.OpMul),
	"/":   calc.Binary(calc.OpDiv),
	"÷":   calc.Binary(calc.OpDiv),
	"^":   calc.Binary(calc.OpPow),
	"x^y": calc.Binary(calc.OpPow),
	"pow": calc.Binary(calc.OpPow),

	"=":      calc.Act(calc.KindEquals),
	"equals": calc.Act(calc.KindEquals),

	"π":  calc.Const(calc.ConstPi),
	"pi": calc.Const(calc.ConstPi),
	"e":  calc.Const(calc.ConstE),

	"√":     calc.Unary(calc.FuncSqrt),
	"sqrt":  calc.Unary(calc.FuncSqrt),
	"n!":    calc.Unary(calc.FuncFactorial),
	"!":     calc.Unary(calc.FuncFactorial),
	"fact":  calc.Unary(calc.FuncFactorial),
	"sin":   calc.Unary(calc.FuncSin),
	"cos":   calc.Unary(calc.FuncCos),
	"tan":   calc.Unary(calc.FuncTan),
	"log₁₀": calc.Unary(calc.FuncLog10),
	"log10": calc.Unary(calc.FuncLog10),
	"log":   calc.Unary(calc.FuncLog10),
	"ln":    calc.Unary(calc.FuncLn),
	"x²":    calc.Unary(calc.FuncSquare),
	"sq":    calc.Unary(calc.FuncSquare),
	"x³":    calc.Unary(calc.FuncCube),
	"cube":  calc.Unary(calc.FuncCube),
	"1/x":   calc.Unary(calc.FuncReciprocal),
	"inv":   calc.Unary(calc.FuncReciprocal),
	"%":     calc.Unary(calc.FuncPercent),
	"EE":    calc.Unary(calc.FuncSciNotation),
	"sci":   calc.Unary(calc.FuncSciNotation),

	"MC": calc.Memory(calc.MemClear),
	"MR": calc.Memory(calc.MemRecall),
	"M+": calc.Memory(calc.MemAdd),
	"M-": calc.Memory(calc.MemSub),
	"MS": calc.Memory(calc.MemStore),

	"DRG": calc.Act(calc.KindToggleAngle),
	"deg": calc.Act(calc.KindToggleAngle),
	"rad": calc.Act(calc.KindToggleAngle),

	"(": calc.Act(calc.KindOpenParen),
	")": calc.Act(calc.KindCloseParen),
}

var (
	folded      = make(map[string]calc.Action, len(aliases))
	maxAliasLen int
)

func init() {
	for d := 0; d <= 9; d++ {
		a := calc.Digit(d)
		aliases[a.String()] = a
	}
	for k, a := range aliases {
		if len(k) > maxAliasLen {
			maxAliasLen = len(k)
		}
		lower := strings.ToLower(k)
		if exact, ok := aliases[lower]; ok {
			a = exact
		}
		folded[lower] = a
	}
}

func lookup(token string) (calc.Action, bool) {
	if a, ok := aliases[token]; ok {
		return a, true
	}
	a, ok := folded[strings.ToLower(token)]
	return a, ok
}

// Parse returns the action for a single token such as "7", "sin" or "M+".
// Lookups fall back to a case-insensitive match.
func Parse(token string) (calc.Action, error) {
	if a, ok := lookup(token); ok {
		return a, nil
	}
	return calc.Action{}, fmt.Errorf("%w: %q", ErrUnknownToken, token)
}

// Tokenize splits a line into tokens, matching the longest known token at
// each position. Multi-digit numbers become one token per digit, so
// "12+3=" yields 1 2 + 3 =.
func Tokenize(line string) ([]string, error) {
	var tokens []string
	for _, field := range strings.FieldsFunc(line, unicode.IsSpace) {
		for i := 0; i < len(field); {
			n := min(maxAliasLen, len(field)-i)
			for ; n > 0; n-- {
				if _, ok := lookup(field[i : i+n]); ok {
					break
				}
			}
			if n == 0 {
				return nil, fmt.Errorf("%w at %q", ErrUnknownToken, field[i:])
			}
			tokens = append(tokens, field[i:i+n])
			i += n
		}
	}
	return tokens, nil
}

// ParseLine tokenizes line and parses every token.
func ParseLine(line string) ([]calc.Action, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	actions := make([]calc.Action, 0, len(tokens))
	for _, tok := range tokens {
		a, err := Parse(tok)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}
