package repository

import (
	"context"
	"encoding/json"

	"workspace_chat_service/internal/chat/domain"
	"workspace_chat_service/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// RedisBus EventBus 的跨節點 transport,走 redis pub/sub
// best-effort: publish 失敗回報給 caller,caller 靜默降級
type RedisBus struct {
	pubsub *RedisPubSub
}

// NewRedisBus create RedisBus
func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{pubsub: NewRedisPubSub(client)}
}

// Publish 發布 bus event 到 topic
func (b *RedisBus) Publish(ctx context.Context, topic string, evt domain.BusEvent) error {
	if err := b.pubsub.Publish(ctx, topic, evt); err != nil {
		return domain.ErrBusUnavailable
	}
	return nil
}

// Subscribe 訂閱 topic 上的 bus event
func (b *RedisBus) Subscribe(ctx context.Context, topic string, handler BusHandler) (Subscription, error) {
	return b.pubsub.Subscribe(ctx, topic, func(payload []byte) {
		var evt domain.BusEvent
		if err := json.Unmarshal(payload, &evt); err != nil {
			logger.Log.Errorf("bus event unmarshal failed:", err)
			return
		}
		handler(evt)
	})
}
