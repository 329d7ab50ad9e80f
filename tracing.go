package lifecycle

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/enetx/lifecycle"

func defaultTracer() trace.Tracer { return otel.Tracer(tracerName) }

// startSpan opens the span covering a single transition attempt.
// The caller is responsible for calling endSpan.
//
//nolint:spancheck // ended by endSpan
func (m *Machine) startSpan(ctx context.Context, from State, t Transition) (context.Context, trace.Span) {
	ctx, span := m.tracer.Start(ctx, "lifecycle."+t.String(),
		trace.WithAttributes(
			attribute.String("lifecycle.machine", m.name),
			attribute.String("lifecycle.transition", t.String()),
			attribute.String("lifecycle.from", from.String()),
		),
	)

	return ctx, span
}

func endSpan(span trace.Span, current State, err error) {
	span.SetAttributes(attribute.String("lifecycle.state", current.String()))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}
