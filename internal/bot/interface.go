package bot

import (
	"context"

	"github.com/auto-dns/docker-monitor-bot/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type updatesAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type replier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type lister interface {
	List(ctx context.Context) ([]domain.ContainerSnapshot, error)
}
