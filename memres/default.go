package memres

import (
	"context"
	"sync/atomic"
)

var defaultResource atomic.Pointer[Resource]

// Default returns the process-wide fallback Resource. It is Heap until
// SetDefault replaces it.
//
// Prefer passing a Resource explicitly or carrying one in a context with
// NewContext; the process default exists for code with no injection point.
func Default() Resource {
	if p := defaultResource.Load(); p != nil {
		return *p
	}
	return Heap{}
}

// SetDefault replaces the process-wide fallback Resource. It affects only
// callers that read the default after this call; containers that captured
// the previous default keep using it.
func SetDefault(r Resource) {
	if r == nil {
		panic("memres: nil resource")
	}
	defaultResource.Store(&r)
}

type ctxKey struct{}

// NewContext returns a copy of ctx that carries r. Callers that receive the
// context resolve the resource with FromContext.
func NewContext(ctx context.Context, r Resource) context.Context {
	if r == nil {
		panic("memres: nil resource")
	}
	return context.WithValue(ctx, ctxKey{}, r)
}

// FromContext returns the Resource carried by ctx, or the process default
// when ctx carries none.
func FromContext(ctx context.Context) Resource {
	if r, ok := ctx.Value(ctxKey{}).(Resource); ok {
		return r
	}
	return Default()
}
