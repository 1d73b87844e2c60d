package domain

import "sort"

const shortIDLength = 12

// ContainerSnapshot is the observed state of one container at a poll instant.
type ContainerSnapshot struct {
	ID     string
	Name   string
	Status string // e.g. "running", "exited", "paused"
	Health string // empty when the container declares no health check
}

func (c ContainerSnapshot) HasHealth() bool {
	return c.Health != ""
}

func (c ContainerSnapshot) ShortID() string {
	if len(c.ID) <= shortIDLength {
		return c.ID
	}
	return c.ID[:shortIDLength]
}

// InventorySnapshot maps container ids to their observed state.
type InventorySnapshot map[string]ContainerSnapshot

func NewInventorySnapshot(containers ...ContainerSnapshot) InventorySnapshot {
	snap := make(InventorySnapshot, len(containers))
	for _, c := range containers {
		snap[c.ID] = c
	}
	return snap
}

// SortedByName returns the containers ordered by name, then id.
func (s InventorySnapshot) SortedByName() []ContainerSnapshot {
	out := make([]ContainerSnapshot, 0, len(s))
	for _, c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
