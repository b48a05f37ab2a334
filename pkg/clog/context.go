package clog

import (
	"context"
	"sync"
)

// ctxAttrs accumulates log attributes over the lifetime of a request so
// the final access-log line carries everything the handlers recorded.
type ctxAttrs struct {
	mu    sync.RWMutex
	attrs map[string]any
}

type ctxAttrsKey struct{}

func ContextWithAttrs(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxAttrsKey{}, &ctxAttrs{
		attrs: make(map[string]any),
	})
}

func AddAttr(ctx context.Context, key string, value any) {
	a, ok := ctx.Value(ctxAttrsKey{}).(*ctxAttrs)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.attrs[key] = value
}

func AddAttrs(ctx context.Context, attrs map[string]any) {
	a, ok := ctx.Value(ctxAttrsKey{}).(*ctxAttrs)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for k, v := range attrs {
		a.attrs[k] = v
	}
}

func GetAttrs(ctx context.Context) map[string]any {
	a, ok := ctx.Value(ctxAttrsKey{}).(*ctxAttrs)
	if !ok {
		return nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	copied := make(map[string]any, len(a.attrs))
	for k, v := range a.attrs {
		copied[k] = v
	}
	return copied
}

const (
	ErrorAttrKey = "error.message"
	StackAttrKey = "error.stack"
)

func AddError(ctx context.Context, err error) {
	AddAttr(ctx, ErrorAttrKey, err)
}

func AddStack(ctx context.Context, stack string) {
	AddAttr(ctx, StackAttrKey, stack)
}
