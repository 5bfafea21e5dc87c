package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// WakeJob returns the cron job that runs the dormancy reconciliation. Each run
// gets its own deadline so a stuck store cannot pile runs up.
func WakeJob(svc *DormancyService, timeout time.Duration) func(context.Context) {
	return func(ctx context.Context) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		n, err := svc.WakeExpired(ctx)
		if err != nil {
			svc.Logger.Error("wake expired dormant leads", zap.Error(err))
			return
		}
		svc.Logger.Debug("wake pass done", zap.Int("woken", n))
	}
}
