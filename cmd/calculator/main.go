// Command calculator prints a fixed demonstration of every arithmetic
// operation, then runs the built-in self-test suite and exits non-zero if
// any case fails.
//
// Logs go to stderr. Set CALC_LOG_LEVEL=debug to see each operation.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/leofalp/calc/core/calc"
	"github.com/leofalp/calc/core/selftest"
	"github.com/leofalp/calc/providers/observability"
	"github.com/leofalp/calc/providers/observability/slogobs"
)

var exit = os.Exit

type sample struct {
	op   calc.Operation
	a, b int
}

var demo = []sample{
	{op: calc.OpAdd, a: 3, b: 4},
	{op: calc.OpSubtract, a: 10, b: 2},
	{op: calc.OpMultiply, a: 5, b: 6},
	{op: calc.OpDivide, a: 9, b: 3},
	{op: calc.OpPower, a: 2, b: 4},
}

func main() {
	exit(run(context.Background(), os.Stdout, slogobs.New()))
}

// run writes the demonstration and the self-test report to out and returns
// the process exit code.
func run(ctx context.Context, out io.Writer, observer observability.Provider) int {
	c := calc.New(calc.WithObserver(observer))

	fmt.Fprintln(out, "Manual demonstration:")
	for _, s := range demo {
		result, err := c.Apply(s.op, s.a, s.b)
		if err != nil {
			observer.Error(ctx, "Demonstration failed", observability.Error(err))
			return 1
		}
		fmt.Fprintf(out, "%d %s %d = %s\n", s.a, s.op.Symbol(), s.b, result)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Running automated tests...")
	fmt.Fprintln(out)

	report := selftest.NewRunner(
		selftest.WithCalculator(c),
		selftest.WithObserver(observer),
	).Run(ctx, out)
	return report.ExitCode()
}
