package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger() (*bytes.Buffer, *SlogAdapter) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &buf, NewSlogAdapter(slog.New(handler))
}

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("m", "k", "v")
	l.Info("m")
	l.Warn("m")
	l.Error("m")
	assert.IsType(t, NopLogger{}, l.With("k", "v"))
}

func TestSlogAdapterLevels(t *testing.T) {
	assert.NotNil(t, NewSlogAdapter(nil).logger)

	buf, adapter := newBufferLogger()
	adapter.Debug("resolving", "ref", "#/components/schemas/Pet")
	adapter.Info("parsed")
	adapter.Warn("conversion failed")
	adapter.Error("boom")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=resolving", "ref=#/components/schemas/Pet",
		"level=INFO", "level=WARN", "level=ERROR",
	} {
		assert.Contains(t, out, want)
	}
}

func TestComponent(t *testing.T) {
	buf, adapter := newBufferLogger()
	Component(adapter, "resolver").Info("hello")
	assert.Contains(t, buf.String(), "component=resolver")

	assert.IsType(t, NopLogger{}, Component(nil, "x"))
	assert.IsType(t, NopLogger{}, Component(NopLogger{}, "x"))
}

func TestLoggerOrNop(t *testing.T) {
	assert.IsType(t, NopLogger{}, LoggerOrNop(nil))
	adapter := NewSlogAdapter(nil)
	assert.Same(t, adapter, LoggerOrNop(adapter))
}
