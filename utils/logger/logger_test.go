package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"critical", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsValidLevel(t *testing.T) {
	for _, valid := range []string{"debug", "info", "warning", "error", "critical", "WARN"} {
		if !IsValidLevel(valid) {
			t.Errorf("expected %q to be valid", valid)
		}
	}
	for _, invalid := range []string{"trace", "verbose", "5"} {
		if IsValidLevel(invalid) {
			t.Errorf("expected %q to be invalid", invalid)
		}
	}
}

func TestTraceAttrs_StampsActiveSpan(t *testing.T) {
	var buf bytes.Buffer
	h := withTraceAttrs(slog.NewJSONHandler(&buf, nil))

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01, 0x02, 0x03, 0x04},
		SpanID:  trace.SpanID{0x0a, 0x0b},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	slog.New(h).InfoContext(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["trace_id"] != sc.TraceID().String() {
		t.Errorf("expected trace_id %s, got %v", sc.TraceID(), entry["trace_id"])
	}
	if entry["span_id"] != sc.SpanID().String() {
		t.Errorf("expected span_id %s, got %v", sc.SpanID(), entry["span_id"])
	}
}

func TestTraceAttrs_NoSpanNoIDs(t *testing.T) {
	var buf bytes.Buffer
	h := withTraceAttrs(slog.NewJSONHandler(&buf, nil))

	slog.New(h).Info("hello")

	out := buf.String()
	if strings.Contains(out, "trace_id") || strings.Contains(out, "span_id") {
		t.Errorf("did not expect trace ids in output, got %s", out)
	}
}

func TestTraceAttrs_SurvivesWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := withTraceAttrs(slog.NewJSONHandler(&buf, nil))

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0xff},
		SpanID:  trace.SpanID{0xee},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	slog.New(h).With("service", "lector").InfoContext(ctx, "hello")

	out := buf.String()
	if !strings.Contains(out, "lector") || !strings.Contains(out, "trace_id") {
		t.Errorf("expected service attr and trace_id in output, got %s", out)
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(slog.LevelInfo)

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected DEBUG to be disabled")
	}
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected INFO to be enabled")
	}
}

func TestContextLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	cl := NewContextLogger(base)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	ctx = context.WithValue(ctx, UserIDKey, "user-456")

	cl.WithContext(ctx).Info("hello")

	out := buf.String()
	if !strings.Contains(out, "req-123") {
		t.Errorf("expected request_id in output, got %s", out)
	}
	if !strings.Contains(out, "user-456") {
		t.Errorf("expected user_id in output, got %s", out)
	}
}

func TestContextLogger_WithContext_Empty(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	cl := NewContextLogger(base)

	cl.WithContext(context.Background()).Info("hello")

	out := buf.String()
	if strings.Contains(out, "request_id") {
		t.Errorf("did not expect request_id in output, got %s", out)
	}
}
