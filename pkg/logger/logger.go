package logger

import (
	"go.uber.org/zap"
)

// New builds a zap logger for the given environment. "development" gets the
// human-readable console encoder, everything else structured JSON.
func New(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewNamed builds an environment-appropriate logger tagged with the service
// name on every entry.
func NewNamed(env, service string) (*zap.Logger, error) {
	log, err := New(env)
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("service", service)), nil
}
