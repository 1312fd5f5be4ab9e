package common

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a zap logger. The development environment gets the
// human-readable console encoder, everything else logs JSON.
func NewLogger(level, environment string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if environment == "development" {
		cfg = zap.NewDevelopmentConfig()
	}

	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = atomicLevel

	return cfg.Build()
}
