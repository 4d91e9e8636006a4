package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestZapWrapper_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).With(map[string]interface{}{"useCase": "ideation"})

	log.Info("agent run finished", map[string]interface{}{"success": true})
	log.WithError(errors.New("boom")).Error("agent run failed", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "ideation", entries[0].ContextMap()["useCase"])
	assert.Equal(t, true, entries[0].ContextMap()["success"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestMapToZapFields_ErrorValues(t *testing.T) {
	fields := mapToZapFields(map[string]interface{}{"cause": errors.New("bad key")})
	assert.Len(t, fields, 1)
	assert.Equal(t, "cause", fields[0].Key)
	assert.Equal(t, zapcore.ErrorType, fields[0].Type)

	assert.Nil(t, mapToZapFields(nil))
}

func TestNewStructured_FallsBackOnBadOutput(t *testing.T) {
	log := NewStructured("info", "json", "/nonexistent-dir/agent.log")
	assert.NotNil(t, log)
	log.Info("still usable", nil)
}
