package keymap

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dohr-michael/scicalc/internal/calc"
)

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		want  calc.Action
	}{
		{"7", calc.Digit(7)},
		{".", calc.Act(calc.KindDecimal)},
		{"x^y", calc.Binary(calc.OpPow)},
		{"÷", calc.Binary(calc.OpDiv)},
		{"sqrt", calc.Unary(calc.FuncSqrt)},
		{"log", calc.Unary(calc.FuncLog10)},
		{"LN", calc.Unary(calc.FuncLn)},
		{"ms", calc.Memory(calc.MemStore)},
		{"e", calc.Const(calc.ConstE)},
		{"E", calc.Const(calc.ConstE)},
		{"ee", calc.Unary(calc.FuncSciNotation)},
		{"c", calc.Act(calc.KindClear)},
		{"rad", calc.Act(calc.KindToggleAngle)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.token)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("sinh")
	if !errors.Is(err, ErrUnknownToken) {
		t.Errorf("err = %v, want %v", err, ErrUnknownToken)
	}
}

func TestParseLabelsRoundTrip(t *testing.T) {
	for _, row := range Layout {
		for _, label := range row {
			a, err := Parse(label)
			if err != nil {
				t.Errorf("layout label %q does not parse: %v", label, err)
				continue
			}
			back, err := Parse(a.String())
			if err != nil || back != a {
				t.Errorf("label of %q = %q, which parses to %v", label, a.String(), back)
			}
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"12+3=", []string{"1", "2", "+", "3", "="}},
		{"2 + 3 * 4 =", []string{"2", "+", "3", "*", "4", "="}},
		{"16 sqrt =", []string{"1", "6", "sqrt", "="}},
		{"5M+ C MR", []string{"5", "M+", "C", "MR"}},
		{"41/x", []string{"4", "1/x"}},
		{"1/3", []string{"1", "/", "3"}},
		{"log10 100", []string{"log10", "1", "0", "0"}},
		{"30sin", []string{"3", "0", "sin"}},
		{"  ", nil},
	}

	for _, tt := range tests {
		got, err := Tokenize(tt.line)
		if err != nil {
			t.Errorf("Tokenize(%q): %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestTokenizeUnknown(t *testing.T) {
	_, err := Tokenize("2 + y")
	if !errors.Is(err, ErrUnknownToken) {
		t.Errorf("err = %v, want %v", err, ErrUnknownToken)
	}
}

func TestParseLineDrivesEngine(t *testing.T) {
	actions, err := ParseLine("2+3*4=")
	if err != nil {
		t.Fatal(err)
	}

	s := calc.NewState()
	var out calc.Output
	for _, a := range actions {
		s, out = calc.Apply(s, a)
	}
	if out.Display != "20" {
		t.Errorf("display = %q, want 20", out.Display)
	}
}
