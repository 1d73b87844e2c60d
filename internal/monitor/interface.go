package monitor

import (
	"context"

	"github.com/auto-dns/docker-monitor-bot/internal/domain"
)

type fetcher interface {
	Fetch(ctx context.Context) (domain.InventorySnapshot, error)
}

type notifier interface {
	Notify(ctx context.Context, event domain.ChangeEvent) error
}
