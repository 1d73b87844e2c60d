package notify

import (
	"context"
	"time"

	"github.com/auto-dns/docker-monitor-bot/internal/domain"
	"github.com/rs/zerolog"
)

// Sink delivers text to a chat.
type Sink interface {
	Send(ctx context.Context, chatID int64, text string) error
}

type Option func(*Notifier)

func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

// Notifier sends one message per change event to a fixed chat.
type Notifier struct {
	logger zerolog.Logger
	sink   Sink
	chatID int64
	now    func() time.Time
}

func NewNotifier(sink Sink, chatID int64, logger zerolog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		logger: logger,
		sink:   sink,
		chatID: chatID,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify formats and sends ev once. Failures come back as *DeliveryError for
// the caller to log.
func (n *Notifier) Notify(ctx context.Context, ev domain.ChangeEvent) error {
	text := FormatMessage(ev, n.now())
	if err := n.sink.Send(ctx, n.chatID, text); err != nil {
		return NewDeliveryError(ev, err)
	}
	n.logger.Debug().Str("container_id", ev.ContainerID).Str("event", string(ev.Kind)).Msg("Notification sent")
	return nil
}
