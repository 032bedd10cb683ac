package logging

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_NamedWithFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core)).Named("sync").With("run_id", 7)

	logger.Info("stage finished", "stage", "matches", "inserted", 3, "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got=%d", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != "sync" {
		t.Fatalf("expected logger name sync, got=%q", entry.LoggerName)
	}
	fields := entry.ContextMap()
	if fields["run_id"] != int64(7) {
		t.Fatalf("expected run_id=7, got=%v", fields["run_id"])
	}
	if fields["inserted"] != int64(3) {
		t.Fatalf("expected inserted=3, got=%v", fields["inserted"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error=boom, got=%v", fields["error"])
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.WarnContext(ctx, "page skipped")

	fields := logs.All()[0].ContextMap()
	if fields["trace_id"] != traceID.String() {
		t.Fatalf("expected trace_id %s, got=%v", traceID, fields["trace_id"])
	}
	if fields["span_id"] != spanID.String() {
		t.Fatalf("expected span_id %s, got=%v", spanID, fields["span_id"])
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) expected %s, got=%s", raw, want, got)
		}
	}
}
