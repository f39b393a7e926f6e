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
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(" ERROR "))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestZapLogger_WritesFieldsAndErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &ZapLogger{zl: zap.New(core)}

	l.Info("Item adicionado.", map[string]interface{}{"upid": "MED-1", "quantity": 5})
	l.Error("Falha no DB.", errors.New("boom"))

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "Item adicionado.", entries[0].Message)
		assert.Equal(t, "MED-1", entries[0].ContextMap()["upid"])
		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
		assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	}
}
