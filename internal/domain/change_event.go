package domain

import "fmt"

type EventKind string

const (
	EventKindAdded         EventKind = "added"
	EventKindRemoved       EventKind = "removed"
	EventKindStatusChanged EventKind = "status_changed"
	EventKindHealthChanged EventKind = "health_changed"
)

func (k EventKind) IsValid() bool {
	switch k {
	case EventKindAdded,
		EventKindRemoved,
		EventKindStatusChanged,
		EventKindHealthChanged:
		return true
	}
	return false
}

// ChangeEvent is one difference between two consecutive inventory snapshots.
// Status is set for Added; From and To are set for StatusChanged and HealthChanged.
type ChangeEvent struct {
	Kind          EventKind
	ContainerID   string
	ContainerName string
	Status        string
	From          string
	To            string
}

func Added(c ContainerSnapshot) ChangeEvent {
	return ChangeEvent{Kind: EventKindAdded, ContainerID: c.ID, ContainerName: c.Name, Status: c.Status}
}

func Removed(c ContainerSnapshot) ChangeEvent {
	return ChangeEvent{Kind: EventKindRemoved, ContainerID: c.ID, ContainerName: c.Name}
}

func StatusChanged(prev, cur ContainerSnapshot) ChangeEvent {
	return ChangeEvent{Kind: EventKindStatusChanged, ContainerID: cur.ID, ContainerName: cur.Name, From: prev.Status, To: cur.Status}
}

func HealthChanged(prev, cur ContainerSnapshot) ChangeEvent {
	return ChangeEvent{Kind: EventKindHealthChanged, ContainerID: cur.ID, ContainerName: cur.Name, From: prev.Health, To: cur.Health}
}

func (e ChangeEvent) Render() string {
	switch e.Kind {
	case EventKindAdded:
		return fmt.Sprintf("[%s] %s (status=%s)", e.Kind, e.ContainerName, e.Status)
	case EventKindStatusChanged, EventKindHealthChanged:
		return fmt.Sprintf("[%s] %s %s -> %s", e.Kind, e.ContainerName, e.From, e.To)
	default:
		return fmt.Sprintf("[%s] %s", e.Kind, e.ContainerName)
	}
}
