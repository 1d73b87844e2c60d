package monitor

import (
	"github.com/auto-dns/docker-monitor-bot/internal/domain"
	"github.com/auto-dns/docker-monitor-bot/internal/util"
)

// Reconcile returns the change events that turn previous into current.
//
// A nil previous snapshot means no inventory has been observed yet: nothing is
// reported, so the first observed inventory seeds state silently. An empty but
// non-nil previous snapshot is real state, and everything in current is Added. Health changes are reported only
// between two present health values. Added, StatusChanged and HealthChanged
// events come first in container id order, followed by Removed events.
func Reconcile(previous, current domain.InventorySnapshot) []domain.ChangeEvent {
	if previous == nil {
		return nil
	}

	var events []domain.ChangeEvent
	for _, id := range util.SortedKeys(current) {
		cur := current[id]
		prev, existed := previous[id]
		if !existed {
			events = append(events, domain.Added(cur))
			continue
		}
		if cur.Status != prev.Status {
			events = append(events, domain.StatusChanged(prev, cur))
		}
		if prev.HasHealth() && cur.HasHealth() && prev.Health != cur.Health {
			events = append(events, domain.HealthChanged(prev, cur))
		}
	}

	removed := util.Filter(util.SortedKeys(previous), func(id string) bool {
		_, stillThere := current[id]
		return !stillThere
	})
	for _, id := range removed {
		events = append(events, domain.Removed(previous[id]))
	}
	return events
}
