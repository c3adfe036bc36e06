package store

import (
	"context"
	"log/slog"
	"time"
)

const ttlWorkerInterval = 10 * time.Minute

// StartTTLWorker runs a background goroutine that periodically sweeps for
// coach sessions idle longer than ttl and deletes them.
func StartTTLWorker(ctx context.Context, repo Repository, ttl time.Duration) {
	ticker := time.NewTicker(ttlWorkerInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("Session TTL worker started", "interval", ttlWorkerInterval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				deleted, err := repo.CleanupExpiredSessions(ctx, ttl)
				if err != nil {
					slog.Error("Session TTL sweep failed", "error", err)
					continue
				}
				if deleted > 0 {
					slog.Info("Expired coach sessions removed", "count", deleted)
				}
			case <-ctx.Done():
				slog.Info("Session TTL worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
