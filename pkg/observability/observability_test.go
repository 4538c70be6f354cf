package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordParse(12, 2, 0.01)
	m.RecordStage("sentiment", 0.002)
	m.RecordSection("author")
	m.RecordSection("author")
	m.RecordFailure("anomalies", "insufficient_data")
	m.RecordAnomalies(3, 1)
	m.SetHealthScore(71.5)

	if got := testutil.ToFloat64(m.EventsParsedTotal); got != 12 {
		t.Errorf("events parsed = %v, want 12", got)
	}
	if got := testutil.ToFloat64(m.HeadersSkippedTotal); got != 2 {
		t.Errorf("headers skipped = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.SectionsTotal.WithLabelValues("author")); got != 2 {
		t.Errorf("author sections = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.AnalyticFailuresTotal.WithLabelValues("anomalies", "insufficient_data")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.AnomaliesDetectedTotal.WithLabelValues("spikes")); got != 3 {
		t.Errorf("spikes = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.HealthScore); got != 71.5 {
		t.Errorf("health score = %v, want 71.5", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) == 0 {
		t.Error("expected registered metric families")
	}
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	// Registering twice on the same registry panics; separate registries must not.
	a := NewDiscardMetrics()
	b := NewDiscardMetrics()
	a.RecordSection("overall")
	if got := testutil.ToFloat64(b.SectionsTotal.WithLabelValues("overall")); got != 0 {
		t.Errorf("registries leaked: got %v", got)
	}
}

func newRecordingTracer() (*Tracer, *tracetest.InMemoryExporter) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	return NewTracerFrom(tp), exp
}

func TestTracer_AnalyzeSpan(t *testing.T) {
	tr, exp := newRecordingTracer()

	ctx, span := tr.StartAnalyzeSpan(context.Background(), "run-1", 10, 2)
	if GetTraceID(ctx) == "" {
		t.Error("expected trace id on context")
	}
	_, child := tr.StartSectionSpan(ctx, "Alice")
	NewSpanHelper(child).SetSuccess()
	child.End()
	span.End()

	spans := exp.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if spans[0].Name != SpanSection {
		t.Errorf("first ended span = %q, want %q", spans[0].Name, SpanSection)
	}
	if spans[0].Parent.SpanID() != spans[1].SpanContext.SpanID() {
		t.Error("section span is not a child of the analyze span")
	}
	if spans[0].Status.Code != codes.Ok {
		t.Errorf("status = %v, want Ok", spans[0].Status.Code)
	}
	found := false
	for _, kv := range spans[1].Attributes {
		if kv.Key == attribute.Key(AttrRunID) && kv.Value.AsString() == "run-1" {
			found = true
		}
	}
	if !found {
		t.Error("run_id attribute missing")
	}
}

func TestSpanHelper_SetError(t *testing.T) {
	tr, exp := newRecordingTracer()

	_, span := tr.StartStageSpan(context.Background(), "anomalies")
	NewSpanHelper(span).SetError(errors.New("boom"), "anomalies", "panic")
	span.End()

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].Status.Code)
	}
	if spans[0].Status.Description != "boom" {
		t.Errorf("description = %q, want boom", spans[0].Status.Description)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected recorded error event")
	}
}

func TestGetTraceID_Empty(t *testing.T) {
	if id := GetTraceID(context.Background()); id != "" {
		t.Errorf("GetTraceID = %q, want empty", id)
	}
}
