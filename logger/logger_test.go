package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(Config{Level: "info"}, &buf)
	log.Info().Str("instrument", "AAPL").Msg("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), `"instrument":"AAPL"`)
}

func TestNewWriterLevels(t *testing.T) {
	testCases := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"error", "error", zerolog.ErrorLevel},
		{"empty defaults to info", "", zerolog.InfoLevel},
		{"unknown defaults to info", "verbose", zerolog.InfoLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWriter(Config{Level: tc.level}, &buf)
			assert.Equal(t, tc.want, log.GetLevel())
		})
	}
}

func TestNewWriterFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(Config{Level: "warn"}, &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWriterPretty(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(Config{Level: "info", Pretty: true}, &buf)
	log.Info().Msg("pretty message")

	assert.Contains(t, buf.String(), "pretty message")
	assert.NotContains(t, buf.String(), `"message"`)
}
