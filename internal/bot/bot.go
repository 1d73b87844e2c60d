package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Bot answers chat commands. Only the configured chat is served.
type Bot struct {
	logger        zerolog.Logger
	api           updatesAPI
	replies       replier
	inventory     lister
	allowedChatID int64
	updateTimeout int
}

func New(api updatesAPI, replies replier, inventory lister, allowedChatID int64, updateTimeout int, logger zerolog.Logger) *Bot {
	return &Bot{
		logger:        logger,
		api:           api,
		replies:       replies,
		inventory:     inventory,
		allowedChatID: allowedChatID,
		updateTimeout: updateTimeout,
	}
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.logger.Info().Msg("Listening for bot commands")
	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot shutting down")
			return nil
		case update, ok := <-updates:
			if !ok {
				b.logger.Info().Msg("Update channel closed")
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}

	reply, ok := b.Reply(ctx, msg.Chat.ID, msg.Command())
	if !ok {
		return
	}
	for _, part := range splitMessage(reply, maxMessageLength) {
		if err := b.replies.Send(ctx, msg.Chat.ID, part); err != nil {
			b.logger.Error().Err(err).Int64("chat_id", msg.Chat.ID).Str("command", msg.Command()).Msg("Failed to send reply")
			return
		}
	}
}

// Reply computes the answer to command sent from chatID. ok is false when the
// command gets no answer at all.
func (b *Bot) Reply(ctx context.Context, chatID int64, command string) (reply string, ok bool) {
	authorized := chatID == b.allowedChatID

	switch command {
	case "start", "help":
		if !authorized {
			b.logger.Warn().Int64("chat_id", chatID).Str("command", command).Msg("Unauthorized command")
			return unauthorizedText, true
		}
		return usageText, true
	case "list":
		if !authorized {
			b.logger.Warn().Int64("chat_id", chatID).Str("command", command).Msg("Unauthorized command")
			return "", false
		}
		containers, err := b.inventory.List(ctx)
		if err != nil {
			b.logger.Error().Err(err).Msg("Listing containers failed")
			return formatError(err), true
		}
		return formatContainerList(containers), true
	default:
		return "", false
	}
}
