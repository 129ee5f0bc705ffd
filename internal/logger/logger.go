package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logDirMode = 0o700

type Config struct {
	Level string
	// Path is the log file. Empty discards all output.
	Path string
}

// New builds a JSON file logger. Statusline output owns stdout, so logs
// never go to the terminal.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.Path == "" {
		return zap.NewNop(), nil
	}

	level := zapcore.ErrorLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), logDirMode); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.Path}
	zc.ErrorOutputPaths = []string{cfg.Path}
	zc.Sampling = nil

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return l, nil
}
