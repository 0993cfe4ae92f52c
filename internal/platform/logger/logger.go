package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the service logger: human-readable in development, JSON otherwise.
func New(appEnv, name string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)

	switch appEnv {
	case "development", "dev", "local":
		l, err = zap.NewDevelopment()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return l.Named(name), nil
}
