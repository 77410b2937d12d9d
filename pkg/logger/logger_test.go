package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, getLogLevel(tt.in))
		})
	}
}

func TestLogPaymentConfirmed(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.LogPaymentConfirmed(context.Background(), "sess-1", "Padang A", "B2", "ref-9")

	out := buf.String()
	assert.Contains(t, out, "Payment Confirmed")
	assert.Contains(t, out, "sess-1")
	assert.Contains(t, out, "Padang A")
	assert.Contains(t, out, "ref-9")
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.LogRemoteStoreCall(context.Background(), "GET", "/teams", 200, 0)

	assert.Empty(t, buf.String())
}
