package app

import (
	"context"
	"fmt"
	"time"

	"github.com/auto-dns/docker-monitor-bot/internal/bot"
	"github.com/auto-dns/docker-monitor-bot/internal/config"
	"github.com/auto-dns/docker-monitor-bot/internal/guard"
	"github.com/auto-dns/docker-monitor-bot/internal/inventory"
	applogger "github.com/auto-dns/docker-monitor-bot/internal/logger"
	"github.com/auto-dns/docker-monitor-bot/internal/monitor"
	"github.com/auto-dns/docker-monitor-bot/internal/notify"
	dockerCli "github.com/docker/docker/client"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	clientv3 "go.etcd.io/etcd/client/v3"
	"golang.org/x/sync/errgroup"
)

type runner interface {
	Run(ctx context.Context) error
}

type holder interface {
	Hold(ctx context.Context, fn func(ctx context.Context) error) error
	Close() error
}

type App struct {
	fetcher *inventory.DockerFetcher
	monitor runner
	bot     runner
	guard   holder
	logger  zerolog.Logger
}

// New creates a new App by wiring up all dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	// Docker CLI
	dockerClient, err := dockerCli.NewClientWithOpts(dockerCli.FromEnv, dockerCli.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	fetcher := inventory.NewDockerFetcher(dockerClient, cfg.Docker.FetchTimeout(), logger)

	// Telegram
	if err := tgbotapi.SetLogger(applogger.NewPrintLogger(logger.With().Str("component", "telegram").Logger(), zerolog.WarnLevel)); err != nil {
		_ = fetcher.Close()
		return nil, fmt.Errorf("failed to set telegram logger: %w", err)
	}
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		_ = fetcher.Close()
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	logger.Info().Str("bot", botAPI.Self.UserName).Msg("Authorized on Telegram")
	sink := notify.NewTelegramSink(botAPI)

	a := &App{
		fetcher: fetcher,
		monitor: monitor.NewMonitor(logger, cfg.Monitor, fetcher, notify.NewNotifier(sink, cfg.Telegram.ChatID, logger)),
		bot:     bot.New(botAPI, sink, fetcher, cfg.Telegram.ChatID, cfg.Telegram.UpdateTimeout, logger),
		logger:  logger,
	}

	// etcd CLI
	if cfg.Etcd.Enabled() {
		etcdClient, err := clientv3.New(clientv3.Config{
			Endpoints:   cfg.Etcd.Endpoints,
			DialTimeout: time.Duration(cfg.Etcd.DialTimeout * float64(time.Second)),
		})
		if err != nil {
			_ = fetcher.Close()
			return nil, fmt.Errorf("failed to connect to etcd: %w", err)
		}
		a.guard = guard.NewEtcdGuard(etcdClient, &cfg.Etcd, logger)
	}

	return a, nil
}

// Run starts the monitor loop and the command bot, inside the single-instance
// guard when one is configured.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("Application starting")
	if a.guard == nil {
		return a.run(ctx)
	}
	return a.guard.Hold(ctx, a.run)
}

func (a *App) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.monitor.Run(ctx) })
	g.Go(func() error { return a.bot.Run(ctx) })
	return g.Wait()
}

func (a *App) Close() error {
	var firstErr error
	if a.fetcher != nil {
		if err := a.fetcher.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close docker client: %w", err)
		}
	}
	if a.guard != nil {
		if err := a.guard.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close etcd client: %w", err)
		}
	}
	return firstErr
}
