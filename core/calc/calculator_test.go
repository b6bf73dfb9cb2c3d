package calc

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/leofalp/calc/providers/observability"
	"github.com/leofalp/calc/providers/observability/slogobs"
)

func TestAdd(t *testing.T) {
	got, err := New().Add(2, 3)
	require.NoError(t, err)
	assert.Equal(t, Int(5), got)
}

func TestSubtract(t *testing.T) {
	got, err := New().Subtract(10, 4)
	require.NoError(t, err)
	assert.Equal(t, Int(6), got)
}

func TestMultiply(t *testing.T) {
	got, err := New().Multiply(3, 5)
	require.NoError(t, err)
	assert.Equal(t, Int(15), got)
}

func TestDivide(t *testing.T) {
	got, err := New().Divide(9, 3)
	require.NoError(t, err)
	assert.True(t, got.IsFloat(), "division always yields a float")
	assert.InDelta(t, 3.0, got.Float64(), 1e-7)
}

func TestDivideByZero(t *testing.T) {
	c := New()
	for _, zero := range []any{0, 0.0, math.Copysign(0, -1), Int(0)} {
		_, err := c.Divide(5, zero)
		assert.ErrorIs(t, err, ErrDivisionByZero, "divisor %v", zero)
	}
}

func TestPower(t *testing.T) {
	got, err := New().Power(2, 3)
	require.NoError(t, err)
	assert.Equal(t, Int(8), got)
}

func TestInvalidType(t *testing.T) {
	_, err := New().Add("a", 2)
	require.ErrorIs(t, err, ErrInvalidArgumentType)
	assert.Contains(t, err.Error(), "operand a")
}

func TestInvalidType_AllOperations(t *testing.T) {
	c := New()
	invalid := []any{"3", "a", true, nil, []int{1}, struct{}{}, complex(1, 2)}

	for _, op := range Operations() {
		for _, bad := range invalid {
			t.Run(fmt.Sprintf("%s/%T", op, bad), func(t *testing.T) {
				_, err := c.Apply(op, bad, 1)
				assert.ErrorIs(t, err, ErrInvalidArgumentType)

				_, err = c.Apply(op, 1, bad)
				assert.ErrorIs(t, err, ErrInvalidArgumentType)
			})
		}
	}
}

func TestDivide_ValidationBeforeZeroCheck(t *testing.T) {
	_, err := New().Divide("x", 0)
	assert.ErrorIs(t, err, ErrInvalidArgumentType)
	assert.NotErrorIs(t, err, ErrDivisionByZero)
}

func TestApply_UnknownOperation(t *testing.T) {
	_, err := New().Apply(Operation("modulo"), 1, 2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidArgumentType)
}

func TestZeroValueCalculator(t *testing.T) {
	var c Calculator
	got, err := c.Multiply(4, 2.5)
	require.NoError(t, err)
	assert.Equal(t, Float(10), got)
}

func TestCalculator_Arithmetic(t *testing.T) {
	c := New()
	tests := []struct {
		name string
		op   Operation
		a, b any
		want Number
	}{
		{"int plus int", OpAdd, 7, 8, Int(15)},
		{"int plus float", OpAdd, 1, 0.5, Float(1.5)},
		{"negatives", OpAdd, -1, -2, Int(-3)},
		{"overflow widens to float", OpAdd, int64(math.MaxInt64), 1, Float(math.MaxInt64 + 1.0)},
		{"subtract to negative", OpSubtract, 3, 10, Int(-7)},
		{"subtract floats", OpSubtract, 5.5, 0.5, Float(5)},
		{"multiply by zero", OpMultiply, 100, 0, Int(0)},
		{"multiply overflow", OpMultiply, int64(math.MaxInt64), 2, Float(2 * float64(math.MaxInt64))},
		{"divide fraction", OpDivide, 10, 4, Float(2.5)},
		{"divide negative", OpDivide, 10, -2, Float(-5)},
		{"power zero exponent", OpPower, 5, 0, Int(1)},
		{"power negative base", OpPower, -2, 3, Int(-8)},
		{"power negative exponent", OpPower, 2, -2, Float(0.25)},
		{"power float base", OpPower, 2.0, 3, Float(8)},
		{"power fractional exponent", OpPower, 9, 0.5, Float(3)},
		{"power overflow widens", OpPower, 10, 20, Float(1e20)},
		{"uint8 operand", OpAdd, uint8(200), uint8(100), Int(300)},
		{"float32 operand", OpMultiply, float32(0.5), 4, Float(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Apply(tt.op, tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind(), got.Kind(), "kind of %v", got)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestPower_ZeroToNegative(t *testing.T) {
	c := New()
	_, err := c.Power(0, -1)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = c.Power(0.0, -0.5)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	got, err := c.Power(0.0, math.Inf(-1))
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.Float64(), 1))
}

func TestPower_NegativeBaseFractionalExponent(t *testing.T) {
	got, err := New().Power(-8, 1.0/3)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Float64()))
}

func TestCalculator_Concurrent(t *testing.T) {
	c := New()
	var g errgroup.Group

	for i := range 64 {
		g.Go(func() error {
			got, err := c.Add(i, i)
			if err != nil {
				return err
			}
			if !got.Equal(Int(int64(2 * i))) {
				return fmt.Errorf("add(%d, %d) = %v", i, i, got)
			}
			if _, err := c.Divide(i, 0); err == nil {
				return fmt.Errorf("divide(%d, 0) succeeded", i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestCalculator_Observer(t *testing.T) {
	var buf bytes.Buffer
	observer := slogobs.New(slogobs.WithOutput(&buf), slogobs.WithLevel(slog.LevelDebug))
	c := New(WithObserver(observer))

	_, err := c.Add(3, 4)
	require.NoError(t, err)
	_, err = c.Add("a", 2)
	require.Error(t, err)
	_, err = c.Divide(5, 0)
	require.Error(t, err)

	assert.Equal(t, int64(1), observer.CounterValue(observability.MetricCalcOperations))
	assert.Equal(t, int64(2), observer.CounterValue(observability.MetricCalcErrors))

	output := buf.String()
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, `"calc.result":"7"`)
	assert.Contains(t, output, `"calc.error.kind":"invalid_argument_type"`)
	assert.Contains(t, output, `"calc.error.kind":"division_by_zero"`)
}

func TestParseOperation(t *testing.T) {
	tests := map[string]Operation{
		"add": OpAdd, "+": OpAdd, " ADD ": OpAdd,
		"sub": OpSubtract, "-": OpSubtract,
		"mul": OpMultiply, "×": OpMultiply,
		"div": OpDivide, "÷": OpDivide,
		"pow": OpPower, "**": OpPower, "^": OpPower,
	}
	for input, want := range tests {
		got, ok := ParseOperation(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParseOperation("mod")
	assert.False(t, ok)
}

func TestOperationSymbol(t *testing.T) {
	symbols := []string{"+", "-", "×", "÷", "^"}
	for i, op := range Operations() {
		assert.Equal(t, symbols[i], op.Symbol())
	}
	assert.Equal(t, "?", Operation("nope").Symbol())
}
