package catalog

import (
	"log/slog"
	"time"
)

// DefaultTruncateAfter is the default number of actions shown in the action log
const DefaultTruncateAfter = 50

// handlerOptions holds configuration for a catalog Handler.
// This is unexported; use HandlerOption functions to configure.
type handlerOptions struct {
	// PathPrefix is where the handler is mounted (e.g. "/stories").
	PathPrefix string
	// TruncateAfter limits the number of actions shown in the action log.
	TruncateAfter uint64
	// Logger receives request errors.
	Logger *slog.Logger
	// Now returns the current time for relative timestamps.
	Now func() time.Time
}

// HandlerOption configures a catalog Handler.
type HandlerOption func(*handlerOptions)

// WithPathPrefix sets the path prefix where the handler is mounted.
// For example, "/stories" if mounted at that path.
// This is used for generating correct URLs in the catalog.
func WithPathPrefix(prefix string) HandlerOption {
	return func(o *handlerOptions) {
		o.PathPrefix = prefix
	}
}

// WithTruncateAfter limits the number of actions shown in the action log.
// Default is DefaultTruncateAfter if not specified.
func WithTruncateAfter(limit uint64) HandlerOption {
	return func(o *handlerOptions) {
		o.TruncateAfter = limit
	}
}

// WithLogger sets the logger of the handler.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.Logger = logger
	}
}

// WithClock sets the function returning the current time.
// Default is time.Now.
func WithClock(now func() time.Time) HandlerOption {
	return func(o *handlerOptions) {
		o.Now = now
	}
}
