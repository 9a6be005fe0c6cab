package observability

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		config LoggingConfig
	}{
		{
			name: "json format",
			config: LoggingConfig{
				Level:  "info",
				Format: "json",
			},
		},
		{
			name: "console format",
			config: LoggingConfig{
				Level:  "debug",
				Format: "console",
				Output: "stderr",
			},
		},
		{
			name: "default format",
			config: LoggingConfig{
				Level:  "warn",
				Format: "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.config)
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("NewLogger returned nil")
			}
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	if logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be disabled at error level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error should be enabled at error level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{"debug level", "debug", zap.DebugLevel},
		{"info level", "info", zap.InfoLevel},
		{"warn level", "warn", zap.WarnLevel},
		{"warning level", "warning", zap.WarnLevel},
		{"error level", "error", zap.ErrorLevel},
		{"invalid defaults to info", "invalid", zap.InfoLevel},
		{"empty defaults to info", "", zap.InfoLevel},
		{"uppercase", "DEBUG", zap.DebugLevel},
		{"mixed case", "Info", zap.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.level); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestLoggerWithFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core).With(zap.String("app", "test-app"))

	logger.Info("startup", zap.Int("port", 8080))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["app"] != "test-app" {
		t.Errorf("app = %v, want test-app", fields["app"])
	}
	if fields["port"] != int64(8080) {
		t.Errorf("port = %v, want 8080", fields["port"])
	}
}
