// Package selftest runs the calculator's reference scenarios at runtime and
// writes a report in the style of `go test -v`.
//
// The demonstration binary uses it to check a [calc.Calculator] after
// printing its sample results. The same scenarios are also covered by the
// calc package's own tests.
package selftest
