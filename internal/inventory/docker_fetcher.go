package inventory

import (
	"context"
	"time"

	"github.com/auto-dns/docker-monitor-bot/internal/domain"
	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/rs/zerolog"
)

// DockerFetcher snapshots every container known to the Docker daemon,
// stopped ones included.
type DockerFetcher struct {
	logger  zerolog.Logger
	cli     dockerClient
	timeout time.Duration
}

// NewDockerFetcher returns a fetcher bounding each Fetch by timeout; zero
// means no bound.
func NewDockerFetcher(cli dockerClient, timeout time.Duration, logger zerolog.Logger) *DockerFetcher {
	return &DockerFetcher{
		logger:  logger,
		cli:     cli,
		timeout: timeout,
	}
}

func (f *DockerFetcher) Fetch(ctx context.Context) (domain.InventorySnapshot, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	summaries, err := f.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, NewUnavailableError("list containers", err)
	}

	snap := make(domain.InventorySnapshot, len(summaries))
	for _, s := range summaries {
		resp, err := f.cli.ContainerInspect(ctx, s.ID)
		if err != nil {
			if cerrdefs.IsNotFound(err) {
				// Removed between list and inspect, so it is already gone.
				f.logger.Debug().Str("container_id", s.ID).Msg("Container vanished before inspect")
				continue
			}
			return nil, NewUnavailableError("inspect container "+s.ID, err)
		}

		c, err := fromInspectResponse(resp)
		if err != nil {
			return nil, NewUnavailableError("decode container "+s.ID, err)
		}
		snap[c.ID] = c
	}

	f.logger.Debug().Int("containers", len(snap)).Msg("Fetched inventory snapshot")
	return snap, nil
}

// List returns the current containers sorted by name.
func (f *DockerFetcher) List(ctx context.Context) ([]domain.ContainerSnapshot, error) {
	snap, err := f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return snap.SortedByName(), nil
}

func (f *DockerFetcher) Close() error {
	return f.cli.Close()
}
