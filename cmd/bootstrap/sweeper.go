package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"eventmarket/internal/pkg/config"
	"eventmarket/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartRequestSweeper),
)

// StartRequestSweeper expires stale booking requests on a fixed interval.
// The sweep is idempotent, so overlapping runs across instances are safe.
func StartRequestSweeper(lc fx.Lifecycle, cfg config.Config, requests commands.RequestCommands) {
	interval := cfg.Workflow.SweepInterval
	if interval <= 0 {
		interval = time.Hour
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						expired, err := requests.ExpireStaleRequests(ctx)
						if err != nil {
							slog.Error("request expiry sweep failed", "error", err.Error())
							continue
						}
						if expired > 0 {
							slog.Info("expired stale booking requests", "count", expired)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
