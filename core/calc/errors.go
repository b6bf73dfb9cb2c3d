package calc

import "errors"

// ErrInvalidArgumentType is returned when an operand is not an integer or
// floating-point value. Numeric-looking strings are rejected as well; no
// implicit coercion is performed.
//
// Example:
//
//	if errors.Is(err, calc.ErrInvalidArgumentType) {
//	    // one of the operands was not a number
//	}
var ErrInvalidArgumentType = errors.New("calc: operands must be numbers (int or float)")

// ErrDivisionByZero is returned by [Calculator.Divide] when the divisor is
// zero, and by [Calculator.Power] when zero is raised to a negative power.
var ErrDivisionByZero = errors.New("calc: division by zero")

// errorKind returns a short label for err used in logs and metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgumentType):
		return "invalid_argument_type"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	default:
		return "unknown"
	}
}
