package logging

import (
	"context"
	"log/slog"
	"time"
)

// LogPruner deletes log rows older than a cutoff.
type LogPruner interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// StartCleanup runs a daily goroutine that deletes system_logs older than retention.
func StartCleanup(pruner LogPruner, retention time.Duration, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				prune(pruner, retention, time.Now())
			case <-done:
				return
			}
		}
	}()
}

func prune(pruner LogPruner, retention time.Duration, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := pruner.DeleteBefore(ctx, now.Add(-retention))
	if err != nil {
		slog.Error("log cleanup failed", "error", err.Error())
		return
	}
	if deleted > 0 {
		slog.Info("log cleanup completed", "deleted", deleted)
	}
}
