package calc

import "errors"

var (
	ErrDivideByZero       = errors.New("divide by zero")
	ErrOverflow           = errors.New("result too large")
	ErrNegativeSquareRoot = errors.New("square root of a negative number")
	ErrNegativeFactorial  = errors.New("factorial of a negative number")
	ErrNonPositiveLog     = errors.New("logarithm of a non-positive number")
	ErrParseFailure       = errors.New("input is not a number")
	ErrUndefined          = errors.New("undefined result")
)

// Display markers shown in place of a value.
const (
	MarkerError        = "Error"
	MarkerDivideByZero = "Error: Div by 0"
	MarkerOverflow     = "Error: Too large"
)

// resolveMarker picks the marker for an error raised while resolving or
// repeating an operation. Unary keys always show MarkerError.
func resolveMarker(err error) string {
	switch {
	case errors.Is(err, ErrDivideByZero):
		return MarkerDivideByZero
	case errors.Is(err, ErrOverflow):
		return MarkerOverflow
	default:
		return MarkerError
	}
}
