package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newBufferLogger()
	ctx := context.Background()

	log.Info(ctx, "hello", "k", "v")
	log.Warn(ctx, "careful")
	log.Error(ctx, "boom")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	log, buf := newBufferLogger()

	child := log.With("component", "history")
	child.Info(context.Background(), "loaded")

	assert.Contains(t, buf.String(), "component=history")

	// Parent is unaffected.
	buf.Reset()
	log.Info(context.Background(), "plain")
	assert.NotContains(t, buf.String(), "component=history")
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	log := Discard()
	require.NotNil(t, log)
	log.Info(context.Background(), "ignored", "k", 1)
	log.With("a", "b").Error(context.Background(), "ignored too")
}
