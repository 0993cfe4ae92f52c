package obs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "req_id"
	loggerKey    ctxKey = "logger"
)

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// WithRequestID returns a context carrying the request id used in log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Logger returns the context logger tagged with the request id, or the global
// zap logger when none is set.
func Logger(ctx context.Context) *zap.Logger {
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	if !ok || l == nil {
		l = zap.L()
	}
	if reqID, _ := ctx.Value(RequestIDKey).(string); reqID != "" {
		l = l.With(zap.String("req_id", reqID))
	}
	return l
}

// Time starts a timer for op; call the returned func (usually deferred) with
// the operation's error pointer to log duration and outcome.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	log := Logger(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Warn("op failed", zap.String("op", name), zap.Duration("dur", dur), zap.Error(*errp))
			return
		}
		log.Debug("op done", zap.String("op", name), zap.Duration("dur", dur))
	}
}
