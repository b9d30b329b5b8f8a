package repository

import (
	"context"
	"sync"

	"workspace_chat_service/internal/chat/domain"

	"github.com/google/uuid"
)

// BusHandler 收到 bus event 的回呼
type BusHandler func(evt domain.BusEvent)

// Subscription 可隨時取消,Cancel 冪等且不影響 in-flight 投遞
type Subscription interface {
	Cancel()
}

// EventBus ephemeral 訊號的 publish/subscribe channel
// fire-and-forget: 無投遞保證、無跨 publisher 順序、無歷史
// 丟一個 ping 只會讓 presence 指示晚一拍,不會破壞訊息資料
type EventBus interface {
	Publish(ctx context.Context, topic string, evt domain.BusEvent) error
	Subscribe(ctx context.Context, topic string, handler BusHandler) (Subscription, error)
}

// MemoryBus 進程內 fan-out,測試與單節點部署用
type MemoryBus struct {
	mu     sync.RWMutex
	topics map[string]map[string]BusHandler
}

// NewMemoryBus create MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{topics: make(map[string]map[string]BusHandler)}
}

// Publish 同步 fan-out 給目前訂閱者,永不失敗
func (b *MemoryBus) Publish(_ context.Context, topic string, evt domain.BusEvent) error {
	b.mu.RLock()
	handlers := make([]BusHandler, 0, len(b.topics[topic]))
	for _, h := range b.topics[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(evt)
	}
	return nil
}

// Subscribe 註冊 handler,ctx 結束時自動取消
func (b *MemoryBus) Subscribe(ctx context.Context, topic string, handler BusHandler) (Subscription, error) {
	id := uuid.New().String()

	b.mu.Lock()
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[string]BusHandler)
	}
	b.topics[topic][id] = handler
	b.mu.Unlock()

	sub := &memorySubscription{bus: b, topic: topic, id: id}
	if ctx != nil {
		go func() {
			<-ctx.Done()
			sub.Cancel()
		}()
	}
	return sub, nil
}

type memorySubscription struct {
	bus   *MemoryBus
	topic string
	id    string
	once  sync.Once
}

// Cancel 冪等解除訂閱
func (s *memorySubscription) Cancel() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		if handlers, ok := s.bus.topics[s.topic]; ok {
			delete(handlers, s.id)
			if len(handlers) == 0 {
				delete(s.bus.topics, s.topic)
			}
		}
	})
}
