package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"eventmarket/internal/pkg/config"
	"eventmarket/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// RedisPublisher fans workflow events out over Redis pub/sub. Delivery is
// fire-and-forget: a failed publish is logged and swallowed so commands
// never fail on the notification path.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(cfg config.RedisConfig) (*RedisPublisher, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
		DB:   cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return &RedisPublisher{client: client}, cleanup, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("failed to encode event payload", "topic", topic, "error", err.Error())
		return
	}

	// Detached from the caller's context so a finished request does not
	// drop the event mid-flight.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.client.Publish(pubCtx, topic, body).Err(); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err.Error())
	}
}

var _ commands.EventPublisher = (*RedisPublisher)(nil)
