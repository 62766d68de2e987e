package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger. Level accepts zap level names ("debug",
// "info", "warn", "error"); anything else fails. env = "production"
// switches to the JSON production encoder, everything else gets the
// console development encoder.
func New(level, env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg.Level = lvl

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
