package apm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer hands out spans from the globally registered trace provider.
type Tracer interface {
	// StartSpanFromContext opens a child span of whatever span ctx
	// carries, or a root span when it carries none.
	StartSpanFromContext(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span)
	// SpanFromContext returns the span already recorded on ctx. With no
	// provider installed this is a noop span, never nil.
	SpanFromContext(ctx context.Context) Span
	GetTracer() trace.Tracer
}

type otelTracer struct {
	tracer trace.Tracer
}

// NewTracer creates a named tracer backed by the global otel provider.
func NewTracer(name string) Tracer {
	return &otelTracer{tracer: otel.Tracer(name)}
}

func (t *otelTracer) StartSpanFromContext(
	ctx context.Context, name string, opts ...trace.SpanStartOption,
) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name, opts...)
	return ctx, NewSpan(span)
}

func (t *otelTracer) SpanFromContext(ctx context.Context) Span {
	return NewSpan(trace.SpanFromContext(ctx))
}

func (t *otelTracer) GetTracer() trace.Tracer {
	return t.tracer
}
