package selftest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/leofalp/calc/core/calc"
	"github.com/leofalp/calc/providers/observability"
)

// Result is the outcome of one case.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
}

// Passed reports whether the case succeeded.
func (r Result) Passed() bool { return r.Err == nil }

// Report summarizes a run.
type Report struct {
	Results  []Result
	Duration time.Duration
}

// Passed returns the number of successful cases.
func (r Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed cases.
func (r Report) Failed() int { return len(r.Results) - r.Passed() }

// OK reports whether every case passed.
func (r Report) OK() bool { return r.Failed() == 0 }

// ExitCode returns 0 when every case passed and 1 otherwise.
func (r Report) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}

// Runner executes cases against a calculator.
type Runner struct {
	calculator *calc.Calculator
	cases      []Case
	observer   observability.Provider
}

// Option configures a Runner.
type Option func(*Runner)

// WithCalculator sets the calculator under test. The default is calc.New().
func WithCalculator(c *calc.Calculator) Option {
	return func(r *Runner) {
		r.calculator = c
	}
}

// WithCases replaces the reference scenarios.
func WithCases(cases ...Case) Option {
	return func(r *Runner) {
		r.cases = cases
	}
}

// WithObserver records the run as a span with per-case metrics.
func WithObserver(provider observability.Provider) Option {
	return func(r *Runner) {
		r.observer = provider
	}
}

// NewRunner returns a Runner over [Cases] unless configured otherwise.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{cases: Cases()}
	for _, opt := range opts {
		opt(r)
	}
	if r.calculator == nil {
		r.calculator = calc.New()
	}
	return r
}

// Run executes every case in order, writes the report to w and returns it.
// A panicking case is reported as a failure and does not stop the run.
// Cases are not started once ctx is done; the remaining ones are reported as
// failed with ctx's error.
func (r *Runner) Run(ctx context.Context, w io.Writer) Report {
	var span observability.Span
	if r.observer != nil {
		ctx, span = r.observer.StartSpan(ctx, observability.SpanSelfTestRun,
			observability.Int("selftest.cases", len(r.cases)),
		)
		defer span.End()
	}

	start := time.Now()
	report := Report{Results: make([]Result, 0, len(r.cases))}

	for _, tc := range r.cases {
		var res Result
		if err := ctx.Err(); err != nil {
			res = Result{Name: tc.Name, Err: fmt.Errorf("not run: %w", err)}
		} else {
			res = r.runCase(tc)
		}
		report.Results = append(report.Results, res)
		writeResult(w, res)
		r.observeCase(ctx, res)
	}
	report.Duration = time.Since(start)
	writeSummary(w, report)

	if span != nil {
		span.SetAttributes(
			observability.Int(observability.AttrSelfTestPassed, report.Passed()),
			observability.Int(observability.AttrSelfTestFailed, report.Failed()),
		)
		if report.OK() {
			span.SetStatus(observability.StatusOK, "")
		} else {
			span.SetStatus(observability.StatusError, fmt.Sprintf("%d of %d cases failed", report.Failed(), len(report.Results)))
		}
	}
	if r.observer != nil {
		r.observer.Info(ctx, "Self-test finished",
			observability.Int(observability.AttrSelfTestPassed, report.Passed()),
			observability.Int(observability.AttrSelfTestFailed, report.Failed()),
			observability.Duration("duration", report.Duration),
		)
	}
	return report
}

func (r *Runner) runCase(tc Case) (res Result) {
	res.Name = tc.Name
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res.Err = fmt.Errorf("panic: %v", p)
		}
		res.Duration = time.Since(start)
	}()
	res.Err = tc.Run(r.calculator)
	return res
}

func (r *Runner) observeCase(ctx context.Context, res Result) {
	if r.observer == nil {
		return
	}
	status := "pass"
	if !res.Passed() {
		status = "fail"
		r.observer.Error(ctx, "Self-test case failed",
			observability.String(observability.AttrSelfTestCase, res.Name),
			observability.Error(res.Err),
		)
	}
	r.observer.Counter(observability.MetricSelfTestCases).Add(ctx, 1,
		observability.String(observability.AttrSelfTestCase, res.Name),
		observability.String(observability.AttrStatus, status),
	)
	r.observer.Histogram(observability.MetricSelfTestDuration).Record(ctx,
		float64(res.Duration.Microseconds())/1000,
		observability.String(observability.AttrSelfTestCase, res.Name),
	)
}

func writeResult(w io.Writer, res Result) {
	if res.Passed() {
		fmt.Fprintf(w, "--- PASS: %s (%.2fs)\n", res.Name, res.Duration.Seconds())
		return
	}
	fmt.Fprintf(w, "--- FAIL: %s (%.2fs)\n", res.Name, res.Duration.Seconds())
	fmt.Fprintf(w, "    %v\n", res.Err)
}

func writeSummary(w io.Writer, report Report) {
	if report.OK() {
		fmt.Fprintln(w, "PASS")
		fmt.Fprintf(w, "ok\t%d tests\t(%.3fs)\n", len(report.Results), report.Duration.Seconds())
		return
	}
	fmt.Fprintln(w, "FAIL")
	fmt.Fprintf(w, "FAIL\t%d of %d tests failed\t(%.3fs)\n", report.Failed(), len(report.Results), report.Duration.Seconds())
}
