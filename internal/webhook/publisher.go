package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shenikar/armguard_console/internal/notify"
)

const (
	webhookQueueKey = "console_notifications"
)

// WebhookEvent - то, что уходит на внешний вебхук
type WebhookEvent struct {
	Source       string              `json:"source"`
	Notification notify.Notification `json:"notification"`
}

// RedisWebhookPublisher ставит уведомления в очередь Redis.
// Подключается к notify.Hub как Sink.
type RedisWebhookPublisher struct {
	redisClient *redis.Client
	source      string
}

var _ notify.Sink = (*RedisWebhookPublisher)(nil)

func NewRedisWebhookPublisher(client *redis.Client, source string) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
		source:      source,
	}
}

// Publish кладет уведомление в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, n notify.Notification) error {
	payload, err := json.Marshal(WebhookEvent{Source: p.source, Notification: n})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH слева, воркер забирает справа
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
