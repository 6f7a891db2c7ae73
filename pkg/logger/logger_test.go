package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithCtxFallsBackToBaseLogger(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))
}

func TestWithCtxReturnsInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	reqLog := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc")

	ctx := InjectLogger(context.Background(), reqLog)
	WithCtx(ctx).Info("hello")

	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	log := slog.New(NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)).With("order_id", 7)

	log.Info("order created")

	assert.Contains(t, a.String(), "order_id=7")
	assert.True(t, strings.Contains(b.String(), `"order_id":7`), b.String())
}

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	slog.New(consoleHandler(&buf, true)).Info("x")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
}
