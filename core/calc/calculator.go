package calc

import (
	"context"
	"fmt"

	"github.com/leofalp/calc/providers/observability"
)

// Calculator performs arithmetic on untyped operands after checking that
// both are numbers. It holds no mutable state; a single instance may be
// shared between goroutines, and the zero value is ready to use.
type Calculator struct {
	observer observability.Provider
}

// Option configures a [Calculator] created with [New].
type Option func(*Calculator)

// WithObserver attaches an observability provider. Each operation then logs
// its outcome and increments the operation or error counters.
func WithObserver(provider observability.Provider) Option {
	return func(c *Calculator) {
		c.observer = provider
	}
}

// New returns a Calculator configured with the given options.
//
// Example:
//
//	c := calc.New(calc.WithObserver(slogobs.New()))
//	sum, err := c.Add(3, 4)
func New(opts ...Option) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add returns a+b.
func (c *Calculator) Add(a, b any) (Number, error) {
	return c.Apply(OpAdd, a, b)
}

// Subtract returns a-b.
func (c *Calculator) Subtract(a, b any) (Number, error) {
	return c.Apply(OpSubtract, a, b)
}

// Multiply returns a*b.
func (c *Calculator) Multiply(a, b any) (Number, error) {
	return c.Apply(OpMultiply, a, b)
}

// Divide returns a/b as a float. It fails with [ErrDivisionByZero] when b is zero.
func (c *Calculator) Divide(a, b any) (Number, error) {
	return c.Apply(OpDivide, a, b)
}

// Power returns a raised to the power b. See [Number.Pow] for the result kind.
func (c *Calculator) Power(a, b any) (Number, error) {
	return c.Apply(OpPower, a, b)
}

// Apply validates both operands and performs op on them. Validation always
// happens first: an invalid operand fails with [ErrInvalidArgumentType] even
// when the arithmetic itself would also fail. Returned errors are wrapped
// with the operation name and can be matched with errors.Is.
func (c *Calculator) Apply(op Operation, a, b any) (Number, error) {
	result, err := c.apply(op, a, b)
	if err != nil {
		err = fmt.Errorf("%s: %w", op, err)
	}
	c.observe(op, a, b, result, err)
	return result, err
}

func (c *Calculator) apply(op Operation, a, b any) (Number, error) {
	x, y, err := validateNumbers(a, b)
	if err != nil {
		return Number{}, err
	}

	switch op {
	case OpAdd:
		return x.Add(y), nil
	case OpSubtract:
		return x.Sub(y), nil
	case OpMultiply:
		return x.Mul(y), nil
	case OpDivide:
		return x.Div(y)
	case OpPower:
		return x.Pow(y)
	default:
		return Number{}, fmt.Errorf("calc: unknown operation %q", op)
	}
}

// validateNumbers converts both operands, reporting which one was rejected.
func validateNumbers(a, b any) (Number, Number, error) {
	x, err := NumberOf(a)
	if err != nil {
		return Number{}, Number{}, fmt.Errorf("operand a: %w", err)
	}
	y, err := NumberOf(b)
	if err != nil {
		return Number{}, Number{}, fmt.Errorf("operand b: %w", err)
	}
	return x, y, nil
}

func (c *Calculator) observe(op Operation, a, b any, result Number, err error) {
	if c.observer == nil {
		return
	}
	ctx := context.Background()

	attrs := []observability.Attribute{
		observability.String(observability.AttrCalcOperation, string(op)),
		observability.String(observability.AttrCalcOperandA, fmt.Sprint(a)),
		observability.String(observability.AttrCalcOperandB, fmt.Sprint(b)),
	}

	if err != nil {
		kind := errorKind(err)
		c.observer.Counter(observability.MetricCalcErrors).Add(ctx, 1,
			observability.String(observability.AttrCalcOperation, string(op)),
			observability.String(observability.AttrCalcErrorKind, kind),
		)
		attrs = append(attrs,
			observability.String(observability.AttrCalcErrorKind, kind),
			observability.Error(err),
		)
		c.observer.Warn(ctx, "Operation failed", attrs...)
		return
	}

	c.observer.Counter(observability.MetricCalcOperations).Add(ctx, 1,
		observability.String(observability.AttrCalcOperation, string(op)),
	)
	attrs = append(attrs,
		observability.String(observability.AttrCalcResult, result.String()),
		observability.String(observability.AttrCalcResultKind, result.Kind().String()),
	)
	c.observer.Debug(ctx, "Operation completed", attrs...)
}
