package selftest

import (
	"errors"
	"fmt"
	"math"

	"github.com/leofalp/calc/core/calc"
)

// Case is a named scenario run against a calculator. Run returns nil when
// the scenario holds.
type Case struct {
	Name string
	Run  func(c *calc.Calculator) error
}

// Cases returns the reference scenarios in execution order.
func Cases() []Case {
	return []Case{
		{Name: "TestAdd", Run: func(c *calc.Calculator) error {
			got, err := c.Add(2, 3)
			return expectEqual("add(2, 3)", got, err, calc.Int(5))
		}},
		{Name: "TestSubtract", Run: func(c *calc.Calculator) error {
			got, err := c.Subtract(10, 4)
			return expectEqual("subtract(10, 4)", got, err, calc.Int(6))
		}},
		{Name: "TestMultiply", Run: func(c *calc.Calculator) error {
			got, err := c.Multiply(3, 5)
			return expectEqual("multiply(3, 5)", got, err, calc.Int(15))
		}},
		{Name: "TestDivide", Run: func(c *calc.Calculator) error {
			got, err := c.Divide(9, 3)
			return expectAlmostEqual("divide(9, 3)", got, err, 3.0)
		}},
		{Name: "TestDivideByZero", Run: func(c *calc.Calculator) error {
			_, err := c.Divide(5, 0)
			return expectError("divide(5, 0)", err, calc.ErrDivisionByZero)
		}},
		{Name: "TestPower", Run: func(c *calc.Calculator) error {
			got, err := c.Power(2, 3)
			return expectEqual("power(2, 3)", got, err, calc.Int(8))
		}},
		{Name: "TestInvalidType", Run: func(c *calc.Calculator) error {
			_, err := c.Add("a", 2)
			return expectError(`add("a", 2)`, err, calc.ErrInvalidArgumentType)
		}},
	}
}

func expectEqual(call string, got calc.Number, err error, want calc.Number) error {
	if err != nil {
		return fmt.Errorf("%s: unexpected error: %w", call, err)
	}
	if !got.Equal(want) {
		return fmt.Errorf("%s: expected %v, got %v", call, want, got)
	}
	return nil
}

// almostEqualPlaces is the number of decimal places two floats must agree to.
const almostEqualPlaces = 7

func expectAlmostEqual(call string, got calc.Number, err error, want float64) error {
	if err != nil {
		return fmt.Errorf("%s: unexpected error: %w", call, err)
	}
	scale := math.Pow10(almostEqualPlaces)
	if math.Round(math.Abs(got.Float64()-want)*scale) != 0 {
		return fmt.Errorf("%s: expected %v within %d places, got %v", call, want, almostEqualPlaces, got)
	}
	return nil
}

func expectError(call string, err, target error) error {
	if err == nil {
		return fmt.Errorf("%s: expected error %q, got none", call, target)
	}
	if !errors.Is(err, target) {
		return fmt.Errorf("%s: expected error %q, got %q", call, target, err)
	}
	return nil
}
