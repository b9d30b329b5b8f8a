package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"workspace_chat_service/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// PubSub 訊息通知的 publish/subscribe transport
type PubSub interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
	Subscribe(ctx context.Context, topic string, handler func(payload []byte)) (Subscription, error)
}

// RedisPubSub definition redis pub/sub
type RedisPubSub struct {
	client *redis.Client
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{client: client}
}

// Publish 將 payload 序列化後發布到指定 topic
func (r *RedisPubSub) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, topic, data).Err()
}

// Subscribe 訂閱 topic,收到訊息後呼叫 handler 處理
// 回傳的 Subscription 取消或 ctx 結束時關閉訂閱
func (r *RedisPubSub) Subscribe(ctx context.Context, topic string, handler func(payload []byte)) (Subscription, error) {
	sub := r.client.Subscribe(ctx, topic)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}
				handler([]byte(m.Payload))
			case <-subCtx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", topic))
				sub.Close()
				return
			}
		}
	}()

	return &redisSubscription{cancel: cancel}, nil
}

type redisSubscription struct {
	cancel context.CancelFunc
	once   sync.Once
}

// Cancel 冪等關閉訂閱
func (s *redisSubscription) Cancel() {
	s.once.Do(s.cancel)
}
