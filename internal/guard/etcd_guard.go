package guard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/auto-dns/docker-monitor-bot/internal/config"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// ErrLockLost is returned by Hold when the lease backing the lock expired
// while the guarded function was running.
var ErrLockLost = errors.New("single-instance lock lost")

const revokeTimeout = 2 * time.Second

// EtcdGuard makes sure only one process runs the guarded function at a time.
type EtcdGuard struct {
	client        etcdClient
	key           string
	owner         string
	ttl           int64
	retryInterval time.Duration
	logger        zerolog.Logger
}

func NewEtcdGuard(client etcdClient, cfg *config.EtcdConfig, logger zerolog.Logger) *EtcdGuard {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}
	return &EtcdGuard{
		client:        client,
		key:           cfg.LockKey,
		owner:         fmt.Sprintf("%s/%s", hostname, uuid.NewString()),
		ttl:           cfg.LockTTL,
		retryInterval: cfg.RetryInterval(),
		logger:        logger,
	}
}

// Hold blocks until the lock is acquired, then runs fn with a context that is
// cancelled if the lock is lost. The lock is released when fn returns.
func (g *EtcdGuard) Hold(ctx context.Context, fn func(ctx context.Context) error) error {
	leaseResp, err := g.client.Grant(ctx, g.ttl)
	if err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}
	lease := leaseResp.ID
	defer g.revoke(lease)

	heldCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	keepAlive, err := g.client.KeepAlive(heldCtx, lease)
	if err != nil {
		return fmt.Errorf("failed to keep lease alive: %w", err)
	}

	lost := make(chan struct{})
	go func() {
		defer close(lost)
		for range keepAlive {
		}
	}()

	if err := g.acquire(heldCtx, lease, lost); err != nil {
		if ctx.Err() != nil {
			// Shut down before the lock was ever held.
			return nil
		}
		return err
	}
	g.logger.Info().Str("key", g.key).Str("owner", g.owner).Msg("Acquired single-instance lock")

	fnErr := make(chan error, 1)
	go func() { fnErr <- fn(heldCtx) }()

	select {
	case err := <-fnErr:
		return err
	case <-lost:
		if ctx.Err() != nil {
			return <-fnErr
		}
		g.logger.Error().Str("key", g.key).Msg("Lease keep-alive ended, stopping")
		cancel()
		<-fnErr
		return ErrLockLost
	}
}

func (g *EtcdGuard) acquire(ctx context.Context, lease clientv3.LeaseID, lost <-chan struct{}) error {
	for {
		txnResp, err := g.client.Txn(ctx).
			If(clientv3.Compare(clientv3.CreateRevision(g.key), "=", 0)).
			Then(clientv3.OpPut(g.key, g.owner, clientv3.WithLease(lease))).
			Commit()
		if err != nil {
			return fmt.Errorf("failed to acquire lock on %s: %w", g.key, err)
		}
		if txnResp.Succeeded {
			return nil
		}

		g.logger.Info().Str("key", g.key).Dur("retry", g.retryInterval).Msg("Lock held by another instance, waiting")
		timer := time.NewTimer(g.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-lost:
			timer.Stop()
			return ErrLockLost
		case <-timer.C:
		}
	}
}

// revoke drops the lease, which deletes the lock key with it.
func (g *EtcdGuard) revoke(lease clientv3.LeaseID) {
	ctx, cancel := context.WithTimeout(context.Background(), revokeTimeout)
	defer cancel()
	if _, err := g.client.Revoke(ctx, lease); err != nil {
		g.logger.Warn().Err(err).Str("key", g.key).Msg("Failed to revoke lease")
	}
}

func (g *EtcdGuard) Close() error {
	return g.client.Close()
}
