// Package handlers implements the work behind the CLI commands: loading
// configuration, connecting to the backend and rendering output.
package handlers

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/matheuscmelo/stackvm/internal/config"
	"github.com/matheuscmelo/stackvm/pkg/openstack"
)

// newSystem creates the backend client; replaceable in tests.
var newSystem = func(cfg *config.Config, logger *zap.SugaredLogger) (*openstack.System, error) {
	return openstack.New(cfg, openstack.WithLogger(logger))
}

// connect loads the configuration and authenticates against the backend.
func connect(configPath string, verbose bool) (*openstack.System, *config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := buildLogger(verbose)
	if err != nil {
		return nil, nil, err
	}

	sys, err := newSystem(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return sys, cfg, nil
}

func buildLogger(verbose bool) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Sugar(), nil
}
