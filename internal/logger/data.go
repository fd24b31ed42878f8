package logger

import "go.uber.org/zap"

// Logger provides structured logging with levels

type Logger struct {
	MinLevel LogLevel
	level    zap.AtomicLevel
	base     *zap.Logger
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)
