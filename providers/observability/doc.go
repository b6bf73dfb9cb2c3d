// Package observability defines the interfaces and semantic conventions used
// for tracing, metrics and structured logging across the calculator.
//
// [Provider] composes [Tracer], [Metrics] and [Logger] into a single
// injectable dependency. An active [Span] travels through a
// [context.Context] via [ContextWithSpan] and [SpanFromContext].
//
// semconv.go holds the attribute keys, span names and metric names that
// components should use when recording observations.
package observability
