package logging

import (
	"context"
	"log/slog"
)

// TeeHandler routes every record to the console handler and mirrors the
// ones the database sink accepts (ERROR and above) into system_logs.
type TeeHandler struct {
	console slog.Handler
	sink    slog.Handler
}

func NewTeeHandler(console, sink slog.Handler) *TeeHandler {
	return &TeeHandler{console: console, sink: sink}
}

func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.console.Enabled(ctx, level) || t.sink.Enabled(ctx, level)
}

func (t *TeeHandler) Handle(ctx context.Context, record slog.Record) error {
	if t.console.Enabled(ctx, record.Level) {
		if err := t.console.Handle(ctx, record); err != nil {
			return err
		}
	}
	if t.sink.Enabled(ctx, record.Level) {
		return t.sink.Handle(ctx, record)
	}
	return nil
}

func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TeeHandler{console: t.console.WithAttrs(attrs), sink: t.sink.WithAttrs(attrs)}
}

func (t *TeeHandler) WithGroup(name string) slog.Handler {
	return &TeeHandler{console: t.console.WithGroup(name), sink: t.sink.WithGroup(name)}
}
