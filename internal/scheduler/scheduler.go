package scheduler

import (
	"context"
	"time"

	"github.com/planora/event-management-backend/internal/pkg/logger"
)

// Sweeper re-derives event statuses so they never drift from their booking
// requests, even if an inline re-derivation was lost.
type Sweeper interface {
	RederiveAll(ctx context.Context) error
}

// StatusSweep runs the sweeper on a fixed interval until ctx is cancelled.
// It blocks and is meant to be started in its own goroutine.
func StatusSweep(ctx context.Context, sweeper Sweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.WithField("interval", interval.String()).Info("status sweep started")

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("status sweep stopped")
			return
		case <-ticker.C:
			if err := sweeper.RederiveAll(ctx); err != nil {
				logger.WithError(err).Error("status sweep failed")
			}
		}
	}
}
