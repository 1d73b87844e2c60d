package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/auto-dns/docker-monitor-bot/internal/config"
	"github.com/auto-dns/docker-monitor-bot/internal/domain"
	"github.com/rs/zerolog"
)

type State string

const (
	StatePolling State = "polling"
	StateBackoff State = "backoff"
)

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the wall-clock SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type Option func(*Monitor)

func WithSleep(sleep SleepFunc) Option {
	return func(m *Monitor) {
		m.sleep = sleep
	}
}

// Monitor polls the inventory, diffs it against the previous snapshot and
// notifies every change. The previous snapshot is owned by the goroutine
// running Run and is never shared.
type Monitor struct {
	logger   zerolog.Logger
	fetcher  fetcher
	notifier notifier
	interval time.Duration
	backoff  time.Duration
	sleep    SleepFunc

	mu    sync.RWMutex
	state State

	// nil until the first successful cycle.
	previous domain.InventorySnapshot
}

func NewMonitor(logger zerolog.Logger, cfg config.MonitorConfig, f fetcher, n notifier, opts ...Option) *Monitor {
	m := &Monitor{
		logger:   logger,
		fetcher:  f,
		notifier: n,
		interval: cfg.PollInterval(),
		backoff:  cfg.Backoff(),
		sleep:    Sleep,
		state:    StatePolling,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run loops until ctx is cancelled. Cycle failures never end the loop: they
// switch to the backoff interval and the previous snapshot is kept, so the
// first successful cycle afterwards diffs against the last good inventory.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info().
		Dur("interval", m.interval).
		Dur("backoff", m.backoff).
		Msg("Starting monitor loop")

	for {
		wait := m.step(ctx)
		if err := m.sleep(ctx, wait); err != nil || ctx.Err() != nil {
			m.logger.Info().Msg("Monitor loop shutting down")
			return nil
		}
	}
}

// step runs one cycle, moves the state machine and returns how long to sleep.
func (m *Monitor) step(ctx context.Context) time.Duration {
	if err := m.cycle(ctx); err != nil {
		if ctx.Err() != nil {
			return 0
		}
		m.setState(StateBackoff)
		m.logger.Error().Err(err).Dur("wait", m.backoff).Str("state", string(StateBackoff)).Msg("Monitoring error")
		return m.backoff
	}
	m.setState(StatePolling)
	return m.interval
}

func (m *Monitor) cycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("monitor cycle panicked: %v", r)
		}
	}()

	current, err := m.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch inventory: %w", err)
	}

	if current == nil {
		current = domain.InventorySnapshot{}
	}
	if m.previous == nil {
		m.logger.Info().Int("containers", len(current)).Msg("Recorded baseline inventory")
	}

	for _, ev := range Reconcile(m.previous, current) {
		m.logger.Info().Str("container_id", ev.ContainerID).Msg(ev.Render())
		if err := m.notifier.Notify(ctx, ev); err != nil {
			m.logger.Error().Err(err).
				Str("container_id", ev.ContainerID).
				Str("event", string(ev.Kind)).
				Msg("Failed to send notification")
		}
	}

	m.previous = current
	return nil
}

// State reports the state the loop entered after its latest cycle. It is safe
// to call while Run is active.
func (m *Monitor) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Monitor) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
