package monitor

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/auto-dns/docker-monitor-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func c(id, status, health string) domain.ContainerSnapshot {
	return domain.ContainerSnapshot{ID: id, Name: "name-" + id, Status: status, Health: health}
}

func snapshot(containers ...domain.ContainerSnapshot) domain.InventorySnapshot {
	return domain.NewInventorySnapshot(containers...)
}

func TestReconcile_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		previous domain.InventorySnapshot
		current  domain.InventorySnapshot
		want     []domain.ChangeEvent
	}{
		{
			name:     "health degrades",
			previous: snapshot(c("c1", "running", "healthy")),
			current:  snapshot(c("c1", "running", "unhealthy")),
			want: []domain.ChangeEvent{
				{Kind: domain.EventKindHealthChanged, ContainerID: "c1", ContainerName: "name-c1", From: "healthy", To: "unhealthy"},
			},
		},
		{
			name:     "container removed",
			previous: snapshot(c("c1", "running", "")),
			current:  snapshot(),
			want: []domain.ChangeEvent{
				{Kind: domain.EventKindRemoved, ContainerID: "c1", ContainerName: "name-c1"},
			},
		},
		{
			name:     "first cycle is a silent baseline",
			previous: nil,
			current:  snapshot(c("c1", "running", ""), c("c2", "exited", "")),
			want:     nil,
		},
		{
			name:     "containers appearing on an empty host are added",
			previous: snapshot(),
			current:  snapshot(c("c2", "running", "healthy")),
			want: []domain.ChangeEvent{
				{Kind: domain.EventKindAdded, ContainerID: "c2", ContainerName: "name-c2", Status: "running"},
			},
		},
		{
			name:     "status and health change together",
			previous: snapshot(c("c1", "running", "healthy")),
			current:  snapshot(c("c1", "restarting", "starting")),
			want: []domain.ChangeEvent{
				{Kind: domain.EventKindStatusChanged, ContainerID: "c1", ContainerName: "name-c1", From: "running", To: "restarting"},
				{Kind: domain.EventKindHealthChanged, ContainerID: "c1", ContainerName: "name-c1", From: "healthy", To: "starting"},
			},
		},
		{
			name:     "health appearing is not reported",
			previous: snapshot(c("c1", "running", "")),
			current:  snapshot(c("c1", "running", "starting")),
			want:     nil,
		},
		{
			name:     "health disappearing is not reported",
			previous: snapshot(c("c1", "running", "healthy")),
			current:  snapshot(c("c1", "running", "")),
			want:     nil,
		},
		{
			name:     "added before removed",
			previous: snapshot(c("a", "running", "")),
			current:  snapshot(c("b", "created", "")),
			want: []domain.ChangeEvent{
				{Kind: domain.EventKindAdded, ContainerID: "b", ContainerName: "name-b", Status: "created"},
				{Kind: domain.EventKindRemoved, ContainerID: "a", ContainerName: "name-a"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.previous, tt.current))
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	snap := snapshot(c("c1", "running", "healthy"), c("c2", "exited", ""), c("c3", "paused", "unhealthy"))
	assert.Empty(t, Reconcile(snap, snap))
}

var (
	statuses = []string{"created", "running", "paused", "exited"}
	healths  = []string{"", "starting", "healthy", "unhealthy"}
)

func randomSnapshot(r *rand.Rand) domain.InventorySnapshot {
	snap := domain.InventorySnapshot{}
	for i := 0; i < 12; i++ {
		if r.Intn(2) == 0 {
			continue
		}
		id := fmt.Sprintf("c%02d", i)
		snap[id] = c(id, statuses[r.Intn(len(statuses))], healths[r.Intn(len(healths))])
	}
	return snap
}

func TestReconcile_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		a, b := randomSnapshot(r), randomSnapshot(r)
		if i%25 == 0 {
			a = nil
		}

		events := Reconcile(a, b)

		if a == nil {
			require.Empty(t, events, "baseline must be silent")
			continue
		}

		byKind := map[domain.EventKind]map[string]int{}
		for _, ev := range events {
			if byKind[ev.Kind] == nil {
				byKind[ev.Kind] = map[string]int{}
			}
			byKind[ev.Kind][ev.ContainerID]++
		}

		for id, prev := range a {
			cur, ok := b[id]
			if !ok {
				require.Equal(t, 1, byKind[domain.EventKindRemoved][id], "one Removed for %s", id)
				continue
			}
			require.Zero(t, byKind[domain.EventKindAdded][id])
			require.Zero(t, byKind[domain.EventKindRemoved][id])

			wantStatus := 0
			if prev.Status != cur.Status {
				wantStatus = 1
			}
			wantHealth := 0
			if prev.Health != "" && cur.Health != "" && prev.Health != cur.Health {
				wantHealth = 1
			}
			require.Equal(t, wantStatus, byKind[domain.EventKindStatusChanged][id])
			require.Equal(t, wantHealth, byKind[domain.EventKindHealthChanged][id])
		}
		for id := range b {
			if _, ok := a[id]; !ok {
				require.Equal(t, 1, byKind[domain.EventKindAdded][id], "one Added for %s", id)
			}
		}

		// Removed events trail all others.
		seenRemoved := false
		for _, ev := range events {
			if ev.Kind == domain.EventKindRemoved {
				seenRemoved = true
			} else {
				require.False(t, seenRemoved, "non-Removed event after a Removed one")
			}
		}
	}
}
