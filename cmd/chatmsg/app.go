package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/lifei6671/chatmsg/internal/config"
	"github.com/lifei6671/chatmsg/internal/logger"
)

// app carries what every sub command needs once flags are parsed.
type app struct {
	viper      *viper.Viper
	configPath *string

	cfg    *config.Config
	logger *slog.Logger
	close  func() error
}

func (a *app) setup() error {
	cfg, err := config.Load(a.viper, *a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, closeFn, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(l)

	a.cfg = cfg
	a.logger = l
	a.close = closeFn
	return nil
}

func (a *app) teardown() {
	if a.close != nil {
		_ = a.close()
	}
}
