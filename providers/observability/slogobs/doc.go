// Package slogobs provides an observability.Provider backed by log/slog.
// It supports structured tracing, in-memory metrics and levelled logging
// through a handler that emits compact, pretty or JSON output.
// The entry point is [New]; output format and log level can be tuned with
// [WithFormat], [WithLevel], [WithOutput], [WithColors] and [WithLogger], or
// through the CALC_LOG_FORMAT and CALC_LOG_LEVEL environment variables.
package slogobs
