// Package logger builds the process-wide zap logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a production JSON logger at level and installs it as the zap
// global logger.
func New(level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomic

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	zap.ReplaceGlobals(log)
	return log, nil
}
