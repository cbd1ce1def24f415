// Package tracing provides OpenTelemetry tracing for pony pack conversions.
//
// A pack run opens a "ponyini.pack" span. Every pony gets a child
// "ponyini.pony" span with parse, transform, repair and write children:
//
//	ctx, span := tracer.Start(ctx, tracing.SpanPony,
//	    tracing.NewAttributeBuilder().WithRun(runID).WithFile("Trot", path).Build())
//	defer span.End()
//
// Spans are exported over OTLP gRPC. When tracing is disabled a noop tracer
// is used.
//
// # Sampling Strategies
//
//   - always: Sample all traces
//   - never: Sample no traces
//   - ratio: Sample a fraction of traces by trace ID
//
// Every strategy honours the sampling decision of a parent span.
package tracing
