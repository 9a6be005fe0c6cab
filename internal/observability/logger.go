package observability

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// NewLogger creates a new structured logger based on configuration.
func NewLogger(config LoggingConfig) (*zap.Logger, error) {
	var zc zap.Config
	if ParseLevel(config.Level) == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(ParseLevel(config.Level))

	switch strings.ToLower(config.Format) {
	case "console", "text":
		zc.Encoding = "console"
	default:
		zc.Encoding = "json"
	}

	switch strings.ToLower(config.Output) {
	case "stderr":
		zc.OutputPaths = []string{"stderr"}
	default:
		zc.OutputPaths = []string{"stdout"}
	}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

// ParseLevel parses a log level name. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
