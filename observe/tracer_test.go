package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// newRecordingTracer returns a Tracer backed by an in-memory span recorder.
func newRecordingTracer() (Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewTracer(tp.Tracer("test")), recorder
}

// spanAttr finds a recorded attribute by key.
func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

// TestCheckMeta_SpanName verifies the deterministic span naming scheme.
func TestCheckMeta_SpanName(t *testing.T) {
	meta := CheckMeta{Name: "database"}
	if got := meta.SpanName(); got != "health.check.database" {
		t.Errorf("SpanName() = %q, want %q", got, "health.check.database")
	}
}

// TestTracer_StartSpan verifies span name and attributes.
func TestTracer_StartSpan(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), CheckMeta{
		Name:      "database",
		Component: "storage",
	})
	tracer.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	got := spans[0]
	if got.Name() != "health.check.database" {
		t.Errorf("span name = %q, want %q", got.Name(), "health.check.database")
	}

	if v, ok := spanAttr(got, "check.name"); !ok || v.AsString() != "database" {
		t.Errorf("check.name attribute = %v, want %q", v, "database")
	}
	if v, ok := spanAttr(got, "check.component"); !ok || v.AsString() != "storage" {
		t.Errorf("check.component attribute = %v, want %q", v, "storage")
	}
}

// TestTracer_EndSpan_Success verifies OK status on success.
func TestTracer_EndSpan_Success(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), CheckMeta{Name: "cache"})
	tracer.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	if code := spans[0].Status().Code; code != codes.Ok {
		t.Errorf("status code = %v, want %v", code, codes.Ok)
	}
	if v, ok := spanAttr(spans[0], "check.error"); !ok || v.AsBool() {
		t.Errorf("check.error = %v, want false", v)
	}
}

// TestTracer_EndSpan_Error verifies error status and recorded error.
func TestTracer_EndSpan_Error(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	checkErr := errors.New("connection refused")
	_, span := tracer.StartSpan(context.Background(), CheckMeta{Name: "database"})
	tracer.EndSpan(span, checkErr)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	got := spans[0]
	if got.Status().Code != codes.Error {
		t.Errorf("status code = %v, want %v", got.Status().Code, codes.Error)
	}
	if got.Status().Description != "connection refused" {
		t.Errorf("status description = %q, want %q", got.Status().Description, "connection refused")
	}
	if v, ok := spanAttr(got, "check.error"); !ok || !v.AsBool() {
		t.Errorf("check.error = %v, want true", v)
	}
	if len(got.Events()) == 0 {
		t.Error("expected a recorded error event")
	}
}

// TestNoopTracer verifies the noop tracer is safe to use.
func TestNoopTracer(t *testing.T) {
	tracer := NewNoopTracer()

	ctx, span := tracer.StartSpan(context.Background(), CheckMeta{Name: "noop"})
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if span == nil {
		t.Fatal("expected non-nil span")
	}

	tracer.EndSpan(span, errors.New("ignored"))
}
