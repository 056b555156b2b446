package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, &TextFormatter{DisableTimestamp: true})

	logger.Debug("hidden")
	logger.Info("shown")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "shown")

	buf.Reset()
	logger.SetLevel(DebugLevel)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
	assert.Equal(t, DebugLevel, logger.GetLevel())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"info", InfoLevel, false},
		{"notice", InfoLevel, false},
		{"warning", WarnLevel, false},
		{"WARN", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"critical", ErrorLevel, false},
		{"emergency", ErrorLevel, false},
		{" Info ", InfoLevel, false},
		{"verbose", InfoLevel, true},
		{"", InfoLevel, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if tt.wantErr {
			assert.Error(t, err, "level %q", tt.name)
			continue
		}
		require.NoError(t, err, "level %q", tt.name)
		assert.Equal(t, tt.want, got, "level %q", tt.name)
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, &TextFormatter{DisableTimestamp: true})

	derived := logger.WithFields(String("collection", "tools"), Int("page_size", 5))
	derived.Info("page served")

	output := buf.String()
	assert.Contains(t, output, "collection=tools")
	assert.Contains(t, output, "page_size=5")

	// The parent logger is unaffected
	buf.Reset()
	logger.Info("plain")
	assert.NotContains(t, buf.String(), "collection")
}

func TestWithContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, &TextFormatter{DisableTimestamp: true})

	ctx := ContextWithRequestID(context.Background(), "req-42")
	logger.WithContext(ctx).Info("handled")

	assert.Contains(t, buf.String(), "[req-42]")
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestWithErrorStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, &TextFormatter{DisableTimestamp: true})

	logger.WithError(mcperrors.InvalidCursor("abc", "not a number")).Warn("list rejected")

	output := buf.String()
	assert.Contains(t, output, "error_code=-32801")
	assert.Contains(t, output, "error_category=validation")
}

func TestTextFormatterComponentHeader(t *testing.T) {
	formatter := &TextFormatter{DisableTimestamp: true}
	var buf bytes.Buffer
	logger := New(&buf, formatter)

	logger.WithFields(String("component", "transport")).Info("message received")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "[INFO] transport: message received"), line)
	// The component field is not repeated in the key=value tail
	assert.NotContains(t, line, "component=")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, &JSONFormatter{DisableTimestamp: true})

	logger.Info("page served",
		String("collection", "resources"),
		Int("items", 10),
		ErrorField(assert.AnError),
	)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "INFO", decoded["level"])
	assert.Equal(t, "page served", decoded["message"])
	assert.Equal(t, "resources", decoded["collection"])
	assert.Equal(t, float64(10), decoded["items"])
	assert.Equal(t, assert.AnError.Error(), decoded["error"])
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	// Must not panic or write anywhere observable
	logger.Info("discarded", String("k", "v"))
	logger.WithError(assert.AnError).Error("also discarded")
}
