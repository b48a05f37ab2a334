package clog

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type middlewareConfig struct {
	Filter func(r *http.Request) bool
}

type MiddlewareOption interface {
	apply(*middlewareConfig)
}

type middlewareOptionFunc func(*middlewareConfig)

func (o middlewareOptionFunc) apply(c *middlewareConfig) {
	o(c)
}

// WithFilter suppresses the access-log line for requests the filter
// rejects (health probes, typically).
func WithFilter(filter func(r *http.Request) bool) MiddlewareOption {
	return middlewareOptionFunc(func(cfg *middlewareConfig) {
		cfg.Filter = filter
	})
}

// Middleware emits one structured access-log line per request,
// enriched with whatever attributes the handlers attached to the
// request context.
func Middleware(opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := ContextWithAttrs(r.Context())
			AddAttrs(ctx, map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
				"proto":  r.Proto,
			})
			next.ServeHTTP(ww, r.WithContext(ctx))
			if cfg.Filter != nil && !cfg.Filter(r) {
				return
			}
			AddAttrs(ctx, map[string]any{
				"status":        ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration":      time.Since(startTime),
			})
			msg := http.StatusText(ww.Status())
			switch HTTPStatusToLevel(ww.Status()) {
			case LevelError:
				slog.ErrorContext(ctx, msg)
			case LevelWarn:
				slog.WarnContext(ctx, msg)
			case LevelInfo:
				slog.InfoContext(ctx, msg)
			case LevelDebug:
				slog.DebugContext(ctx, msg)
			}
		})
	}
}
