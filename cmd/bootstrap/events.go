package bootstrap

import (
	"context"
	"log/slog"

	"eventmarket/internal/infra/events"
	"eventmarket/internal/pkg/config"
	"eventmarket/internal/usecase/commands"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher falls back to a no-op publisher when Redis is
// unreachable; event delivery is best-effort and must not block startup.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) commands.EventPublisher {
	pub, cleanup, err := events.NewRedisPublisher(cfg.Redis)
	if err != nil {
		slog.Warn("redis unavailable, workflow events disabled", "addr", cfg.Redis.Addr(), "error", err.Error())
		return events.NewNoopPublisher()
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return pub
}
