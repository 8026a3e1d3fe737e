package calc

import (
	"math"
	"strconv"
	"strings"
)

// Apply dispatches one action and returns the resulting state and its
// display output. Errors never escape: they become an error marker in the
// display and are recorded in State.Err.
func Apply(s State, a Action) (State, Output) {
	switch a.Kind {
	case KindDigit:
		s = s.digit(a.Digit)
	case KindDecimal:
		s = s.decimal()
	case KindClear:
		s = s.clear()
	case KindBackspace:
		s = s.backspace()
	case KindNegate:
		s = s.negate()
	case KindBinary:
		s = s.binary(a.Op)
	case KindEquals:
		s = s.equals()
	case KindConstant:
		s = s.constant(a.Const)
	case KindFunction:
		s = s.unary(a.Func)
	case KindMemory:
		s = s.memory(a.Mem)
	case KindToggleAngle:
		s.Angle = s.Angle.Toggle()
	case KindOpenParen:
		s = s.appendLiteral("(")
	case KindCloseParen:
		s = s.appendLiteral(")")
	}
	return s, s.Output()
}

// fresh starts a new literal after a result or an operator.
func (s State) fresh() State {
	s.Input = "0"
	s.AwaitingFresh = false
	s.HasDecimal = false
	s.Err = nil
	return s
}

// show replaces the input with a computed value.
func (s State) show(text string) State {
	s.Input = text
	s.HasDecimal = strings.Contains(text, ".")
	s.Err = nil
	return s
}

func (s State) fail(err error, marker string) State {
	s.Input = marker
	s.HasDecimal = false
	s.AwaitingFresh = true
	s.Err = err
	return s
}

func (s State) digit(d int) State {
	if d < 0 || d > 9 {
		return s
	}
	if s.AwaitingFresh {
		s = s.fresh()
	}
	if s.Input == "0" {
		s.Input = strconv.Itoa(d)
	} else {
		s.Input += strconv.Itoa(d)
	}
	return s
}

func (s State) decimal() State {
	if s.AwaitingFresh {
		s = s.fresh()
	}
	if !s.HasDecimal {
		s.Input += "."
		s.HasDecimal = true
	}
	return s
}

func (s State) clear() State {
	return State{
		Input:  "0",
		Memory: s.Memory,
		Angle:  s.Angle,
	}
}

func (s State) backspace() State {
	if s.Err != nil {
		s = s.fresh()
		return s
	}
	in := s.Input
	if len(in) <= 1 || (in[0] == '-' && len(in) == 2) {
		s.Input = "0"
		s.HasDecimal = false
		return s
	}
	if in[len(in)-1] == '.' {
		s.HasDecimal = false
	}
	s.Input = in[:len(in)-1]
	return s
}

func (s State) negate() State {
	if s.Err != nil {
		return s
	}
	if strings.HasPrefix(s.Input, "-") {
		s.Input = s.Input[1:]
	} else {
		s.Input = "-" + s.Input
	}
	return s
}

func (s State) appendLiteral(text string) State {
	if s.Err != nil {
		return s
	}
	s.Input += text
	return s
}

func (s State) binary(op BinaryOp) State {
	if s.Pending != OpNone && !s.AwaitingFresh {
		s = s.resolve()
		if s.Err != nil {
			s.Pending = OpNone
			return s
		}
	}

	v, err := parseOperand(s.Input)
	if err != nil {
		s = s.fail(err, MarkerError)
		s.Pending = OpNone
		return s
	}
	s.Previous = v
	s.HasPrevious = true
	s.Pending = op
	s.AwaitingFresh = true
	s.HasDecimal = false
	s.Last = LastAction{}
	s.HasLast = false
	return s
}

func (s State) equals() State {
	if s.Pending != OpNone && !s.AwaitingFresh {
		s = s.resolve()
		s.Pending = OpNone
		s.AwaitingFresh = true
		return s
	}
	if s.Pending == OpNone && s.HasLast {
		return s.repeat()
	}
	return s
}

// resolve computes Previous Pending Input.
func (s State) resolve() State {
	cur, err := parseOperand(s.Input)
	if err != nil {
		return s.fail(err, MarkerError)
	}
	result, err := s.Pending.apply(s.Previous, cur)
	if err != nil {
		return s.fail(err, resolveMarker(err))
	}
	s = s.show(Format(result))
	s.Previous = result
	s.HasPrevious = true
	s.Last = LastAction{Kind: KindBinary, Op: s.Pending, Operand: cur}
	s.HasLast = true
	return s
}

// repeat replays the last action against the displayed value. Only the
// repeatable functions compute anything; a binary operator or any other
// function leaves the value as it is.
func (s State) repeat() State {
	cur, err := parseOperand(s.Input)
	if err != nil {
		return s.fail(err, MarkerError)
	}

	result, text := cur, Format(cur)
	if s.Last.Kind == KindFunction && repeatable(s.Last.Func) {
		result, text, err = evalFunction(s.Last.Func, cur, s.Angle)
		if err != nil {
			return s.fail(err, resolveMarker(err))
		}
	}
	s = s.show(text)
	s.Previous = result
	s.HasPrevious = true
	return s
}

func (s State) constant(c Constant) State {
	var v float64
	switch c {
	case ConstPi:
		v = math.Pi
	case ConstE:
		v = math.E
	default:
		return s
	}
	s = s.show(strconv.FormatFloat(v, 'g', -1, 64))
	s.AwaitingFresh = true
	return s
}

func (s State) unary(f Function) State {
	v, err := parseOperand(s.Input)
	if err != nil {
		return s.fail(err, MarkerError)
	}
	_, text, err := evalFunction(f, v, s.Angle)
	if err != nil {
		return s.fail(err, MarkerError)
	}
	s = s.show(text)
	s.Last = LastAction{Kind: KindFunction, Func: f, Operand: v}
	s.HasLast = true
	s.AwaitingFresh = true
	return s
}

func (s State) memory(m MemoryOp) State {
	v, err := parseOperand(s.Input)
	if err != nil {
		return s.fail(err, MarkerError)
	}

	switch m {
	case MemClear:
		s.Memory = 0
	case MemRecall:
		s = s.show(Format(s.Memory))
		s.AwaitingFresh = true
	case MemAdd, MemSub:
		next := s.Memory + v
		if m == MemSub {
			next = s.Memory - v
		}
		if math.IsInf(next, 0) {
			return s.fail(ErrOverflow, MarkerError)
		}
		s.Memory = next
	case MemStore:
		s.Memory = v
	}
	return s
}
