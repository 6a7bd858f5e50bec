package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WrapPass runs fn inside a span named "solve."+name, recording fn's error
// (if any) on the span before returning it. The solver's own passes never
// error — cmd/mcfsolve uses it to wrap its whole pass.Solve call in one
// span named "solve.solve".
func WrapPass(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := StartSpan(ctx, "solve."+name, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return err
}

// WrapSweep starts a span around a single Dijkstra sweep within a pass,
// named "solve.<pass>.sweep", and returns the span so the caller can attach
// per-sweep attributes (source station, nodes reached) before ending it.
func WrapSweep(ctx context.Context, pass string) (context.Context, trace.Span) {
	return StartSpan(ctx, "solve."+pass+".sweep", trace.WithSpanKind(trace.SpanKindInternal))
}
