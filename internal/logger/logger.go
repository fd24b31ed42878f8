package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logLevelNames = map[LogLevel]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var zapLevels = map[LogLevel]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

// New builds a production zap logger at the given level.
func New(level LogLevel) (*Logger, error) {
	atom := zap.NewAtomicLevelAt(zapLevels[level])
	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")

	base, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Logger{MinLevel: level, level: atom, base: base}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{MinLevel: LevelError, level: zap.NewAtomicLevelAt(zapcore.ErrorLevel), base: zap.NewNop()}
}

// ParseLevel maps debug|info|warn|error to a LogLevel, defaulting to info.
func ParseLevel(s string) LogLevel {
	for lvl, name := range logLevelNames {
		if strings.EqualFold(s, name) {
			return lvl
		}
	}
	if strings.EqualFold(s, "warning") {
		return LevelWarn
	}
	return LevelInfo
}

// SetLogLevel sets the minimum log level
func (l *Logger) SetLogLevel(level LogLevel) {
	l.MinLevel = level
	l.level.SetLevel(zapLevels[level])
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.base.Sync()
}

func (l *Logger) log(level LogLevel, component, message string, args ...interface{}) {
	if level < l.MinLevel || l.base == nil {
		return
	}

	formattedMsg := fmt.Sprintf(message, args...)
	fields := []zap.Field{}
	if component != "" {
		fields = append(fields, zap.String("component", component))
	}

	switch level {
	case LevelDebug:
		l.base.Debug(formattedMsg, fields...)
	case LevelInfo:
		l.base.Info(formattedMsg, fields...)
	case LevelWarn:
		l.base.Warn(formattedMsg, fields...)
	default:
		l.base.Error(formattedMsg, fields...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(component, message string, args ...interface{}) {
	l.log(LevelDebug, component, message, args...)
}

// Info logs an info message
func (l *Logger) Info(component, message string, args ...interface{}) {
	l.log(LevelInfo, component, message, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(component, message string, args ...interface{}) {
	l.log(LevelWarn, component, message, args...)
}

// Error logs an error message
func (l *Logger) Error(component, message string, args ...interface{}) {
	l.log(LevelError, component, message, args...)
}

// Fatal logs an error message and exits
func (l *Logger) Fatal(component, message string, args ...interface{}) {
	l.log(LevelError, component, message, args...)
	l.Sync()
	os.Exit(1)
}
