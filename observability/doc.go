// Package observability wires OpenTelemetry tracing and metrics.
//
//	shutdown, err := observability.InitTracer(ctx, cfg.Tracing, res, log)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanLogin)
//	defer span.End()
//
// With exporters disabled the global providers stay no-op, so spans and
// counters cost next to nothing.
package observability
