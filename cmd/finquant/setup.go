package main

import (
	"fmt"

	"github.com/newthinker/finquant/internal/app"
	"github.com/newthinker/finquant/internal/config"
	"github.com/newthinker/finquant/internal/logger"
	"go.uber.org/zap"
)

// loadConfig reads --config, or the defaults when no file is given.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Debug("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// withApp handles common logger, config and app setup.
func withApp(fn func(a *app.App, log *zap.Logger) error) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	return fn(a, log)
}
