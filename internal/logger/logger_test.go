package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewRespectsLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{level: "debug", want: zapcore.DebugLevel},
		{level: "info", want: zapcore.InfoLevel},
		{level: "warn", want: zapcore.WarnLevel},
		{level: "error", want: zapcore.ErrorLevel},
		{level: "bogus", want: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := New(tt.level, "text")
			assert.True(t, log.Core().Enabled(tt.want))
			if tt.want != zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewAlwaysReturnsUsableLogger(t *testing.T) {
	for _, format := range []string{"json", "text", "bogus"} {
		for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
			log := New(level, format)
			if assert.NotNil(t, log, "level=%s format=%s", level, format) {
				log.Info("smoke write")
			}
		}
	}
	assert.NotNil(t, NewNopLogger())
}
