package notify

import (
	"fmt"
	"time"

	"github.com/auto-dns/docker-monitor-bot/internal/domain"
)

const timestampFormat = "2006-01-02 15:04:05"

// FormatMessage renders ev as the text sent to the destination chat, stamped with at.
func FormatMessage(ev domain.ChangeEvent, at time.Time) string {
	return fmt.Sprintf("[%s]\n%s", at.Format(timestampFormat), formatBody(ev))
}

func formatBody(ev domain.ChangeEvent) string {
	switch ev.Kind {
	case domain.EventKindAdded:
		return fmt.Sprintf("🆕 New Container: %s\nStatus: %s", ev.ContainerName, ev.Status)
	case domain.EventKindStatusChanged:
		return fmt.Sprintf("🔄 Status Change: %s\n%s → %s", ev.ContainerName, ev.From, ev.To)
	case domain.EventKindHealthChanged:
		return fmt.Sprintf("🩺 Health Change: %s\n%s → %s", ev.ContainerName, ev.From, ev.To)
	case domain.EventKindRemoved:
		return fmt.Sprintf("🗑️ Removed: %s", ev.ContainerName)
	default:
		return fmt.Sprintf("❔ %s: %s", ev.Kind, ev.ContainerName)
	}
}
