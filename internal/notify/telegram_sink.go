package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink sends plain-text messages through the Bot API.
type TelegramSink struct {
	api botSender
}

func NewTelegramSink(api botSender) *TelegramSink {
	return &TelegramSink{api: api}
}

func (s *TelegramSink) Send(ctx context.Context, chatID int64, text string) error {
	// The Bot API client takes no context; honour cancellation before the call.
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
