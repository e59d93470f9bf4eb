package configs

import "go.uber.org/zap"

// NewLogger builds the process-wide logger. APP_ENV=development switches to
// the human-readable console encoder.
func NewLogger() (*zap.Logger, error) {
	if env("APP_ENV", "production") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
