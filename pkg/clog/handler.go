package clog

import (
	"context"
	"log/slog"
)

// AttrsHandler decorates another slog.Handler with the attributes
// accumulated in the record's context.
type AttrsHandler struct {
	handler slog.Handler
}

func NewAttrsHandler(handler slog.Handler) *AttrsHandler {
	return &AttrsHandler{handler: handler}
}

func (h *AttrsHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *AttrsHandler) Handle(ctx context.Context, record slog.Record) error {
	attrs := GetAttrs(ctx)
	if len(attrs) > 0 {
		recAttrs := make([]slog.Attr, 0, len(attrs))
		for k, v := range attrs {
			recAttrs = append(recAttrs, slog.Any(k, v))
		}
		record.AddAttrs(recAttrs...)
	}
	return h.handler.Handle(ctx, record)
}

func (h *AttrsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AttrsHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *AttrsHandler) WithGroup(name string) slog.Handler {
	return &AttrsHandler{handler: h.handler.WithGroup(name)}
}
