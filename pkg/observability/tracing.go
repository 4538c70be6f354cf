package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of analysis spans.
const TracerName = "chatpulse"

// Span attribute keys
const (
	AttrRunID     = "run_id"
	AttrSource    = "source"
	AttrEvents    = "events"
	AttrAuthors   = "authors"
	AttrAuthor    = "author"
	AttrStage     = "stage"
	AttrAnalytic  = "analytic"
	AttrErrorCode = "error_code"
)

// Span names
const (
	SpanParse   = "chatpulse.parse"
	SpanAnalyze = "chatpulse.analyze"
	SpanSection = "chatpulse.section"
)

// Tracer starts analysis spans. Without a configured provider the global
// no-op tracer is used.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer returns a tracer from the global provider.
func NewTracer() *Tracer {
	return &Tracer{tracer: otel.Tracer(TracerName)}
}

// NewTracerFrom returns a tracer from tp.
func NewTracerFrom(tp trace.TracerProvider) *Tracer {
	return &Tracer{tracer: tp.Tracer(TracerName)}
}

// StartParseSpan starts the span covering transcript parsing.
func (t *Tracer) StartParseSpan(ctx context.Context, source string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanParse,
		trace.WithAttributes(attribute.String(AttrSource, source)),
	)
}

// StartAnalyzeSpan starts the root span of an analysis run.
func (t *Tracer) StartAnalyzeSpan(ctx context.Context, runID string, events, authors int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanAnalyze,
		trace.WithAttributes(
			attribute.String(AttrRunID, runID),
			attribute.Int(AttrEvents, events),
			attribute.Int(AttrAuthors, authors),
		),
	)
}

// StartStageSpan starts a span for a shared analysis stage.
func (t *Tracer) StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "chatpulse.stage."+stage,
		trace.WithAttributes(attribute.String(AttrStage, stage)),
	)
}

// StartSectionSpan starts a span for one author's section.
func (t *Tracer) StartSectionSpan(ctx context.Context, author string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanSection,
		trace.WithAttributes(attribute.String(AttrAuthor, author)),
	)
}

// SpanHelper provides convenient methods for working with a span.
type SpanHelper struct {
	span trace.Span
}

// NewSpanHelper wraps span.
func NewSpanHelper(span trace.Span) *SpanHelper {
	return &SpanHelper{span: span}
}

// SetError records a degraded analytic on the span.
func (h *SpanHelper) SetError(err error, analytic, code string) {
	h.span.SetStatus(codes.Error, err.Error())
	h.span.SetAttributes(
		attribute.String(AttrAnalytic, analytic),
		attribute.String(AttrErrorCode, code),
	)
	h.span.RecordError(err)
}

// SetSuccess marks the span as successful.
func (h *SpanHelper) SetSuccess() {
	h.span.SetStatus(codes.Ok, "")
}

// AddEvent adds an event to the span.
func (h *SpanHelper) AddEvent(name string, attrs ...attribute.KeyValue) {
	h.span.AddEvent(name, trace.WithAttributes(attrs...))
}

// GetTraceID returns the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}
