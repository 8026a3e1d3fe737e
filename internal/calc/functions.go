package calc

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// maxFactorial is the largest n whose n! still fits in a float64.
const maxFactorial = 170

// apply computes prev op cur.
func (op BinaryOp) apply(prev, cur float64) (float64, error) {
	var r float64
	switch op {
	case OpAdd:
		r = prev + cur
	case OpSub:
		r = prev - cur
	case OpMul:
		r = prev * cur
	case OpDiv:
		if cur == 0 {
			return 0, ErrDivideByZero
		}
		r = prev / cur
	case OpPow:
		if prev == 0 && cur < 0 {
			return 0, ErrDivideByZero
		}
		r = math.Pow(prev, cur)
	default:
		return 0, fmt.Errorf("unknown operator %d", op)
	}
	return checkResult(r)
}

func checkResult(r float64) (float64, error) {
	switch {
	case math.IsNaN(r):
		return 0, ErrUndefined
	case math.IsInf(r, 0):
		return 0, ErrOverflow
	}
	return r, nil
}

// evalFunction applies f to v and returns the value and its display text.
// The text is not always Format(value): factorials print every digit and
// scientific notation keeps its exponent form.
func evalFunction(f Function, v float64, unit AngleUnit) (float64, string, error) {
	switch f {
	case FuncFactorial:
		return factorial(v)
	case FuncSciNotation:
		text := fmt.Sprintf("%.4e", v)
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, "", fmt.Errorf("%w: %q", ErrParseFailure, text)
		}
		return value, text, nil
	}

	var r float64
	switch f {
	case FuncSqrt:
		if v < 0 {
			return 0, "", ErrNegativeSquareRoot
		}
		r = math.Sqrt(v)
	case FuncSin:
		r = math.Sin(toRadians(v, unit))
	case FuncCos:
		r = math.Cos(toRadians(v, unit))
	case FuncTan:
		r = math.Tan(toRadians(v, unit))
	case FuncLog10:
		if v <= 0 {
			return 0, "", ErrNonPositiveLog
		}
		r = math.Log10(v)
	case FuncLn:
		if v <= 0 {
			return 0, "", ErrNonPositiveLog
		}
		r = math.Log(v)
	case FuncSquare:
		r = math.Pow(v, 2)
	case FuncCube:
		r = math.Pow(v, 3)
	case FuncReciprocal:
		if v == 0 {
			return 0, "", ErrDivideByZero
		}
		r = 1 / v
	case FuncPercent:
		r = v / 100
	default:
		return 0, "", fmt.Errorf("unknown function %d", f)
	}

	r, err := checkResult(r)
	if err != nil {
		return 0, "", err
	}
	return r, Format(r), nil
}

// factorial truncates v toward zero and computes the exact factorial.
func factorial(v float64) (float64, string, error) {
	n := math.Trunc(v)
	if n < 0 {
		return 0, "", ErrNegativeFactorial
	}
	if n > maxFactorial {
		return 0, "", ErrOverflow
	}
	exact := new(big.Int).MulRange(1, int64(n))
	value, _ := new(big.Float).SetInt(exact).Float64()
	return value, exact.String(), nil
}

func toRadians(v float64, unit AngleUnit) float64 {
	if unit == Degree {
		return v * (math.Pi / 180)
	}
	return v
}

// repeatable reports whether equals re-applies f to the displayed value.
func repeatable(f Function) bool {
	switch f {
	case FuncSqrt, FuncFactorial, FuncSin, FuncCos, FuncTan, FuncReciprocal:
		return true
	}
	return false
}
