// Package logging builds the opsboard zap logger. The TUI owns the terminal,
// so entries go to a JSON file that the Activity screen tails.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field keys shared with logtail.
const (
	TimeKey    = "ts"
	LevelKey   = "level"
	MessageKey = "msg"
	LoggerKey  = "logger"
)

// New returns a JSON logger appending to path at level ("debug", "info",
// "warn", "error"). An empty level means info.
func New(path, level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if s := strings.TrimSpace(level); s != "" {
		parsed, err := zapcore.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.TimeKey = TimeKey
	cfg.EncoderConfig.LevelKey = LevelKey
	cfg.EncoderConfig.MessageKey = MessageKey
	cfg.EncoderConfig.NameKey = LoggerKey
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("opsboard"), nil
}
