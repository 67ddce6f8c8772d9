package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/n0secutiry/taskapi/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSetup_WritesJSONAtConfiguredLevel(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	buf := &TestLogBuffer{}
	l := setup(config.ServerConfig{LogLevel: "warn"}, buf)

	l.Info("hidden")
	l.Warn("shown", "k", "v")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "v", entries[0]["k"])
	assert.Same(t, l, slog.Default())
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	custom, _ := GetTestLogger(t)
	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))

	fallback, _ := GetTestLogger(t)
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, custom, FromContextOrDefault(ctx, fallback))
}

func TestWithTraceID(t *testing.T) {
	ctx, buf := NewTestContext(t)
	ctx = WithTraceID(ctx, "abc123")

	assert.Equal(t, "abc123", TraceIDFromContext(ctx))
	assert.Equal(t, "", TraceIDFromContext(context.Background()))

	FromContext(ctx).Info("hello")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "abc123", entries[0]["trace_id"])
}
