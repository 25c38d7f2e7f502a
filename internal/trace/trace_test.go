package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDisabledByDefault(t *testing.T) {
	t.Setenv("LOG_TRACING_ENABLED", "")
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	if Enabled() {
		t.Fatal("Expected tracing disabled without LOG_TRACING_ENABLED")
	}

	ctx, span := StartSpan(context.Background(), "noop")
	span.End()
	if _, _, ok := GetTraceFields(ctx); ok {
		t.Error("Expected no trace fields when disabled")
	}
}

func TestInitWithWriterExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("InitWithWriter failed: %v", err)
	}
	if !Enabled() {
		t.Fatal("Expected tracing enabled")
	}

	ctx, span := StartSpan(context.Background(), "resolve.company")
	traceID, spanID, ok := GetTraceFields(ctx)
	if !ok || traceID == "" || spanID == "" {
		t.Errorf("Expected trace fields, got %q %q %v", traceID, spanID, ok)
	}
	span.End()

	if err := Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !strings.Contains(buf.String(), "resolve.company") {
		t.Errorf("Expected exported span, got:\n%s", buf.String())
	}
}
