package views

import (
	"context"
	"strings"
)

// HandlerOptions are the handler settings views need for building URLs
type HandlerOptions struct {
	PathPrefix string
}

type ctxKey int

const handlerOptionsKey ctxKey = iota

func WithHandlerOptions(ctx context.Context, opts HandlerOptions) context.Context {
	return context.WithValue(ctx, handlerOptionsKey, opts)
}

func handlerOptions(ctx context.Context) HandlerOptions {
	opts, _ := ctx.Value(handlerOptionsKey).(HandlerOptions)
	return opts
}

// URL returns path below the handler's path prefix
func URL(ctx context.Context, path string) string {
	prefix := strings.TrimSuffix(handlerOptions(ctx).PathPrefix, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return prefix + path
}
