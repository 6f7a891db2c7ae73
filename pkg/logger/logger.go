// Package logger provides the application's structured logger on log/slog.
//
// WithCtx returns the request-scoped logger injected by middleware.Logger,
// so every line written while serving a request carries its request_id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", order.ID)
//	// → time=... level=INFO msg="order created" request_id=9f0c... order_id=12
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hpfoods/hpfoods-api/config"
)

var L *slog.Logger

func init() {
	L = slog.New(consoleHandler(os.Stdout, config.IsProduction()))
	slog.SetDefault(L)
}

// consoleHandler is JSON for log aggregators in production and text elsewhere.
func consoleHandler(w io.Writer, production bool) slog.Handler {
	if production {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// Attach fans the base logger out to extra sinks (for example the Mongo
// handler) in addition to stdout.
func Attach(extra ...slog.Handler) {
	if len(extra) == 0 {
		return
	}
	hs := append([]slog.Handler{consoleHandler(os.Stdout, config.IsProduction())}, extra...)
	L = slog.New(NewMultiHandler(hs...))
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the logger stored in ctx by InjectLogger, or the base
// logger when the context carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return L
}

// InjectLogger stores log in ctx. Called by the Logger middleware.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
