// Package syncer drains the pending-write queue into the remote project
// store. Persistence is opportunistic: failures are logged and the item is
// dropped, never retried with backoff, so a dead database cannot stall the
// request path.
package syncer

import (
	"context"
	"errors"
	"time"

	"humanizepro/internal/ports"
	"humanizepro/internal/store"
	"humanizepro/pkg/logger"
)

// Run starts worker goroutines fed by a dispatcher that polls the queue.
// It returns immediately; workers stop when ctx is cancelled.
func Run(ctx context.Context, queue ports.SyncQueue, repo ports.ProjectRepository, remote ports.RemoteProjectStore, concurrency int, pollInterval time.Duration, log *logger.Logger) {
	if concurrency < 1 {
		return
	}
	itemsCh := make(chan ports.SyncItem, concurrency)

	// dispatcher loop
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				close(itemsCh)
				return
			case <-ticker.C:
				for {
					item, found := queue.ClaimNext()
					if !found {
						break
					}
					select {
					case itemsCh <- item:
					case <-ctx.Done():
						close(itemsCh)
						return
					}
				}
			}
		}
	}()

	// workers
	for i := 0; i < concurrency; i++ {
		go func(idx int) {
			for item := range itemsCh {
				if err := Process(ctx, repo, remote, item); err != nil {
					log.Warn("project sync failed", "worker", idx, "project_id", item.ProjectID, "error", err)
				}
			}
		}(i)
	}
}

// Process applies one pending write against the remote store. An upsert for
// a project that has since been deleted locally is a no-op.
func Process(ctx context.Context, repo ports.ProjectRepository, remote ports.RemoteProjectStore, item ports.SyncItem) error {
	switch item.Op {
	case ports.SyncDelete:
		return remote.Remove(ctx, item.ProjectID)
	case ports.SyncUpsert:
		p, err := repo.Get(ctx, item.ProjectID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return remote.Upsert(ctx, p)
	default:
		return nil
	}
}

// Drain synchronously flushes everything still pending, for shutdown.
func Drain(ctx context.Context, queue ports.SyncQueue, repo ports.ProjectRepository, remote ports.RemoteProjectStore, log *logger.Logger) {
	for {
		item, found := queue.ClaimNext()
		if !found {
			return
		}
		if err := Process(ctx, repo, remote, item); err != nil {
			log.Warn("project sync failed during drain", "project_id", item.ProjectID, "error", err)
		}
	}
}
