package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger: human-readable in development,
// JSON in every other environment.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	return cfg.Build()
}
