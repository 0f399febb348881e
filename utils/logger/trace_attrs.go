package logger

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// traceAttrs stamps records emitted under an active span with the ids
// needed to join log lines back to the trace. Records logged outside a
// span pass through untouched.
type traceAttrs struct {
	slog.Handler
}

func withTraceAttrs(next slog.Handler) slog.Handler {
	return traceAttrs{Handler: next}
}

func (t traceAttrs) Handle(ctx context.Context, record slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return t.Handler.Handle(ctx, record)
}

func (t traceAttrs) WithAttrs(attrs []slog.Attr) slog.Handler {
	return traceAttrs{Handler: t.Handler.WithAttrs(attrs)}
}

func (t traceAttrs) WithGroup(name string) slog.Handler {
	return traceAttrs{Handler: t.Handler.WithGroup(name)}
}
