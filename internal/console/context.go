package console

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/fsmkit/pkg/logger"
)

type sessionKey struct{}

// WithSessionID stores the session identifier in ctx.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionIDFromContext returns the session identifier stored in ctx, or "".
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// LoggerExtractor returns a logger.ContextExtractor that adds the session id to records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := SessionIDFromContext(ctx); id != "" {
			return logger.SessionID(id), true
		}
		return slog.Attr{}, false
	}
}
