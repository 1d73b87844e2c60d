package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/auto-dns/docker-monitor-bot/internal/app"
	"github.com/auto-dns/docker-monitor-bot/internal/config"
)

type application interface {
	Run(ctx context.Context) error
	Close() error
}

func newApplication(cfg *config.Config, logger zerolog.Logger) (application, error) {
	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return a, nil
}
