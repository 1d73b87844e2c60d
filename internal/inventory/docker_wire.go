package inventory

import (
	"errors"
	"strings"

	"github.com/auto-dns/docker-monitor-bot/internal/domain"
	"github.com/docker/docker/api/types/container"
)

var (
	errMissingID    = errors.New("container has no id")
	errMissingState = errors.New("container has no state")
)

func fromInspectResponse(resp container.InspectResponse) (domain.ContainerSnapshot, error) {
	if resp.ContainerJSONBase == nil || resp.ID == "" {
		return domain.ContainerSnapshot{}, errMissingID
	}
	if resp.State == nil {
		return domain.ContainerSnapshot{}, errMissingState
	}

	snap := domain.ContainerSnapshot{
		ID:     resp.ID,
		Name:   strings.TrimPrefix(resp.Name, "/"),
		Status: string(resp.State.Status),
	}
	if resp.State.Health != nil {
		snap.Health = string(resp.State.Health.Status)
	}
	return snap, nil
}
