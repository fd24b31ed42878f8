package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(level LogLevel) (*Logger, *observer.ObservedLogs) {
	atom := zap.NewAtomicLevelAt(zapLevels[level])
	core, logs := observer.New(atom)
	return &Logger{MinLevel: level, level: atom, base: zap.New(core)}, logs
}

func TestLogger_ComponentFieldAndFormatting(t *testing.T) {
	l, logs := newObserved(LevelDebug)

	l.Info("Loader", "Dataset loaded: records=%d", 12)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "Dataset loaded: records=12", entries[0].Message)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, "Loader", entries[0].ContextMap()["component"])
	}
}

func TestLogger_SetLogLevelFilters(t *testing.T) {
	l, logs := newObserved(LevelDebug)
	l.SetLogLevel(LevelWarn)

	l.Debug("X", "hidden")
	l.Info("X", "hidden")
	l.Warn("X", "shown")

	assert.Equal(t, 1, logs.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestNewNop_DoesNotPanic(t *testing.T) {
	l := NewNop()
	l.Error("X", "dropped %v", 1)
	l.Sync()
}
