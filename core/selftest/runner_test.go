package selftest

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/leofalp/calc/core/calc"
	"github.com/leofalp/calc/providers/observability"
	"github.com/leofalp/calc/providers/observability/slogobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var durationPattern = regexp.MustCompile(`\(\d+\.\d+s\)`)

// normalize replaces timings so reports can be compared literally.
func normalize(s string) string {
	return durationPattern.ReplaceAllString(s, "(T)")
}

func TestRunner_ReferenceCasesPass(t *testing.T) {
	var buf bytes.Buffer
	report := NewRunner().Run(context.Background(), &buf)

	assert.True(t, report.OK())
	assert.Equal(t, 7, report.Passed())
	assert.Equal(t, 0, report.Failed())
	assert.Equal(t, 0, report.ExitCode())

	want := strings.Join([]string{
		"--- PASS: TestAdd (T)",
		"--- PASS: TestSubtract (T)",
		"--- PASS: TestMultiply (T)",
		"--- PASS: TestDivide (T)",
		"--- PASS: TestDivideByZero (T)",
		"--- PASS: TestPower (T)",
		"--- PASS: TestInvalidType (T)",
		"PASS",
		"ok\t7 tests\t(T)",
		"",
	}, "\n")
	assert.Equal(t, want, normalize(buf.String()))
}

func TestRunner_Failures(t *testing.T) {
	cases := []Case{
		{Name: "TestOK", Run: func(*calc.Calculator) error { return nil }},
		{Name: "TestBroken", Run: func(*calc.Calculator) error { return errors.New("boom") }},
		{Name: "TestPanics", Run: func(*calc.Calculator) error { panic("kaboom") }},
		{Name: "TestAfterPanic", Run: func(*calc.Calculator) error { return nil }},
	}

	var buf bytes.Buffer
	report := NewRunner(WithCases(cases...)).Run(context.Background(), &buf)

	assert.False(t, report.OK())
	assert.Equal(t, 2, report.Passed())
	assert.Equal(t, 2, report.Failed())
	assert.Equal(t, 1, report.ExitCode())
	require.Len(t, report.Results, 4)
	assert.EqualError(t, report.Results[1].Err, "boom")
	assert.EqualError(t, report.Results[2].Err, "panic: kaboom")
	assert.True(t, report.Results[3].Passed())

	want := strings.Join([]string{
		"--- PASS: TestOK (T)",
		"--- FAIL: TestBroken (T)",
		"    boom",
		"--- FAIL: TestPanics (T)",
		"    panic: kaboom",
		"--- PASS: TestAfterPanic (T)",
		"FAIL",
		"FAIL\t2 of 4 tests failed\t(T)",
		"",
	}, "\n")
	assert.Equal(t, want, normalize(buf.String()))
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	cases := []Case{{Name: "TestNeverRuns", Run: func(*calc.Calculator) error {
		ran = true
		return nil
	}}}

	var buf bytes.Buffer
	report := NewRunner(WithCases(cases...)).Run(ctx, &buf)

	assert.False(t, ran)
	require.Len(t, report.Results, 1)
	assert.ErrorIs(t, report.Results[0].Err, context.Canceled)
	assert.Equal(t, 1, report.ExitCode())
}

func TestRunner_UsesConfiguredCalculator(t *testing.T) {
	c := calc.New()
	var got *calc.Calculator
	cases := []Case{{Name: "TestCapture", Run: func(x *calc.Calculator) error {
		got = x
		return nil
	}}}

	NewRunner(WithCalculator(c), WithCases(cases...)).Run(context.Background(), &bytes.Buffer{})
	assert.Same(t, c, got)
}

func TestRunner_Observer(t *testing.T) {
	var logs bytes.Buffer
	observer := slogobs.New(
		slogobs.WithOutput(&logs),
		slogobs.WithFormat(slogobs.FormatJSON),
		slogobs.WithLevel(slogobs.LevelTrace),
	)

	cases := append(Cases(), Case{Name: "TestBroken", Run: func(*calc.Calculator) error {
		return errors.New("boom")
	}})

	report := NewRunner(
		WithCalculator(calc.New(calc.WithObserver(observer))),
		WithCases(cases...),
		WithObserver(observer),
	).Run(context.Background(), &bytes.Buffer{})

	assert.Equal(t, 7, report.Passed())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, int64(8), observer.CounterValue(observability.MetricSelfTestCases))
	// TestDivideByZero and TestInvalidType exercise one failing operation each.
	assert.Equal(t, int64(2), observer.CounterValue(observability.MetricCalcErrors))
	assert.Equal(t, int64(5), observer.CounterValue(observability.MetricCalcOperations))

	out := logs.String()
	assert.Contains(t, out, observability.SpanSelfTestRun)
	assert.Contains(t, out, "Self-test case failed")
	assert.Contains(t, out, "Self-test finished")
}

func TestExpectations(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr string
	}{
		{
			name: "equal across kinds",
			err:  expectEqual("power(2, 3)", calc.Float(8), nil, calc.Int(8)),
		},
		{
			name:    "not equal",
			err:     expectEqual("add(2, 3)", calc.Int(6), nil, calc.Int(5)),
			wantErr: "add(2, 3): expected 5, got 6",
		},
		{
			name:    "unexpected error",
			err:     expectEqual("add(2, 3)", calc.Number{}, errors.New("nope"), calc.Int(5)),
			wantErr: "add(2, 3): unexpected error: nope",
		},
		{
			name: "almost equal within seven places",
			err:  expectAlmostEqual("divide(1, 3)", calc.Float(1.0/3), nil, 0.33333333),
		},
		{
			name:    "almost equal outside seven places",
			err:     expectAlmostEqual("divide(1, 3)", calc.Float(1.0/3), nil, 0.3333),
			wantErr: "divide(1, 3): expected 0.3333 within 7 places, got 0.3333333333333333",
		},
		{
			name: "matching error",
			err:  expectError("divide(5, 0)", calc.ErrDivisionByZero, calc.ErrDivisionByZero),
		},
		{
			name:    "missing error",
			err:     expectError("divide(5, 0)", nil, calc.ErrDivisionByZero),
			wantErr: `divide(5, 0): expected error "calc: division by zero", got none`,
		},
		{
			name:    "wrong error",
			err:     expectError("divide(5, 0)", calc.ErrInvalidArgumentType, calc.ErrDivisionByZero),
			wantErr: `divide(5, 0): expected error "calc: division by zero", got "calc: operands must be numbers (int or float)"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr == "" {
				assert.NoError(t, tt.err)
				return
			}
			assert.EqualError(t, tt.err, tt.wantErr)
		})
	}
}

func TestCases(t *testing.T) {
	for _, tc := range Cases() {
		t.Run(tc.Name, func(t *testing.T) {
			assert.NoError(t, tc.Run(calc.New()))
		})
	}
}
