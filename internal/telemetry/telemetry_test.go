package telemetry

import (
	"context"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInstallRoutesSpansToProcessor(t *testing.T) {
	ctx := context.Background()
	rec := tracetest.NewSpanRecorder()
	shutdown, err := install(ctx, sdktrace.WithSpanProcessor(rec))
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	defer shutdown(ctx)

	_, span := Tracer("battle").Start(ctx, "battle.session")
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	if ended[0].Name() != "battle.session" {
		t.Errorf("span name = %q", ended[0].Name())
	}
	if got := ended[0].InstrumentationScope().Name; got != "beatbound/battle" {
		t.Errorf("scope = %q, want beatbound/battle", got)
	}
}

func TestNoopTracerRecordsNothing(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "x")
	if span.IsRecording() {
		t.Error("noop span is recording")
	}
	span.End()
}
