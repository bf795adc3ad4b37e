package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/l10nsync/pkg/domain/types"
)

type ctxRunIDKey struct{}

// CtxRunID returns run ID from context. If run ID is not set, return new run ID and context with it
func CtxRunID(ctx context.Context) (types.RunID, context.Context) {
	if id, ok := ctx.Value(ctxRunIDKey{}).(types.RunID); ok {
		return id, ctx
	}

	newID := types.NewRunID()
	return newID, context.WithValue(ctx, ctxRunIDKey{}, newID)
}

type ctxLoggerKey struct{}

// With returns a new context with logger
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns logger from context. If logger is not set, return default logger
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

type ctxTimeKey struct{}
type TimeFunc func() time.Time

// CtxTime returns time from context. If time is not set, return current time and context with it
func CtxTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ctxTimeKey{}).(TimeFunc); ok {
		return t()
	}
	return time.Now()
}

// CtxWithTime returns a new context with time function
func CtxWithTime(ctx context.Context, timeFunc TimeFunc) context.Context {
	return context.WithValue(ctx, ctxTimeKey{}, timeFunc)
}

// InheritContextValues copies run ID and time function from src context to dst context.
// Logger is not copied; use With() separately.
func InheritContextValues(dst, src context.Context) context.Context {
	if runID, ok := src.Value(ctxRunIDKey{}).(types.RunID); ok {
		dst = context.WithValue(dst, ctxRunIDKey{}, runID)
	}

	// Copy time function if exists
	if timeFunc, ok := src.Value(ctxTimeKey{}).(TimeFunc); ok {
		dst = context.WithValue(dst, ctxTimeKey{}, timeFunc)
	}

	return dst
}

// RunIDFrom returns the run ID of the context without creating one.
func RunIDFrom(ctx context.Context) (types.RunID, bool) {
	id, ok := ctx.Value(ctxRunIDKey{}).(types.RunID)
	return id, ok
}

// WithRun attaches a run ID and a logger tagged with run_id to ctx. A context
// that already has a run ID is returned unchanged.
func WithRun(ctx context.Context) (types.RunID, context.Context) {
	if id, ok := RunIDFrom(ctx); ok {
		return id, ctx
	}
	id, ctx := CtxRunID(ctx)
	return id, With(ctx, From(ctx).With(slog.String("run_id", id.String())))
}
