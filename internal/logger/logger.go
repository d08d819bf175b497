// Package logger holds the process-wide zap logger.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// L is the global logger instance
	L    *zap.Logger
	once sync.Once
)

// Build creates a logger: colored development output when debug is set,
// JSON with ISO8601 timestamps otherwise.
func Build(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// Init initializes the global logger once.
func Init(debug bool) {
	once.Do(func() {
		l, err := Build(debug)
		if err != nil {
			l = zap.NewNop()
		}
		L = l
	})
}

// Sync flushes any buffered log entries.
func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}

// Default returns the global logger, initializing it from GIN_MODE if
// nothing has yet.
func Default() *zap.Logger {
	if L == nil {
		Init(os.Getenv("GIN_MODE") != "release")
	}
	return L
}

// Named returns a child logger for a component.
func Named(name string) *zap.Logger {
	return Default().Named(name)
}

// With creates a child logger with additional fields.
func With(fields ...zap.Field) *zap.Logger {
	return Default().With(fields...)
}

func Debug(msg string, fields ...zap.Field) { Default().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Default().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Default().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Default().Error(msg, fields...) }

// Fatal logs and exits. Only startup code should call it.
func Fatal(msg string, fields ...zap.Field) { Default().Fatal(msg, fields...) }
