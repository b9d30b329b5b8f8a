package app

import (
	"context"
	"sync"
	"time"

	"workspace_chat_service/internal/chat/domain"
	"workspace_chat_service/internal/chat/repository"
	"workspace_chat_service/pkg"
	"workspace_chat_service/pkg/logger"
	errprocess "workspace_chat_service/pkg/err"

	"go.uber.org/zap"
)

// HuddleUseCase 管理每個 channel 的 ambient 語音 session
// 狀態由 channel 成員共同持有,最後一個成員離開時結束
type HuddleUseCase struct {
	mu      sync.Mutex
	huddles map[string]*domain.Huddle
	pubsub  repository.PubSub
}

// NewHuddleUseCase create HuddleUseCase
func NewHuddleUseCase(pubsub repository.PubSub) *HuddleUseCase {
	return &HuddleUseCase{
		huddles: make(map[string]*domain.Huddle),
		pubsub:  pubsub,
	}
}

// Start 任一成員可開始 huddle,已在進行中則改為加入
func (uc *HuddleUseCase) Start(ctx context.Context, channelID, userID string) (domain.Huddle, error) {
	uc.mu.Lock()
	h, ok := uc.huddles[channelID]
	if ok && h.Active {
		uc.mu.Unlock()
		return uc.Join(ctx, channelID, userID)
	}

	h = &domain.Huddle{
		ChannelID: channelID,
		Active:    true,
		StartedAt: time.Now().UnixMilli(),
		StartedBy: userID,
		Members:   []string{userID},
	}
	uc.huddles[channelID] = h
	snapshot := *h
	uc.mu.Unlock()

	uc.broadcast(ctx, snapshot)
	return snapshot, nil
}

// Join 加入進行中的 huddle
func (uc *HuddleUseCase) Join(ctx context.Context, channelID, userID string) (domain.Huddle, error) {
	uc.mu.Lock()
	h, ok := uc.huddles[channelID]
	if !ok || !h.Active {
		uc.mu.Unlock()
		return domain.Huddle{}, errprocess.Set("no active huddle in channel")
	}
	if !pkg.Contains(h.Members, userID) {
		h.Members = append(h.Members, userID)
	}
	snapshot := *h
	uc.mu.Unlock()

	uc.broadcast(ctx, snapshot)
	return snapshot, nil
}

// Leave 離開 huddle
// 最後一個成員離開,或 starter 離開,都會結束 huddle
func (uc *HuddleUseCase) Leave(ctx context.Context, channelID, userID string) (domain.Huddle, error) {
	uc.mu.Lock()
	h, ok := uc.huddles[channelID]
	if !ok || !h.Active {
		uc.mu.Unlock()
		return domain.Huddle{}, errprocess.Set("no active huddle in channel")
	}

	h.Members = pkg.Remove(h.Members, userID)
	if len(h.Members) == 0 || userID == h.StartedBy {
		h.Active = false
		h.Members = nil
		delete(uc.huddles, channelID)
	}
	snapshot := *h
	uc.mu.Unlock()

	uc.broadcast(ctx, snapshot)
	return snapshot, nil
}

// SetMuted 任一成員可切換 huddle 靜音標記
func (uc *HuddleUseCase) SetMuted(ctx context.Context, channelID, userID string, muted bool) (domain.Huddle, error) {
	uc.mu.Lock()
	h, ok := uc.huddles[channelID]
	if !ok || !h.Active || !pkg.Contains(h.Members, userID) {
		uc.mu.Unlock()
		return domain.Huddle{}, errprocess.Set("not a member of an active huddle")
	}
	h.Muted = muted
	snapshot := *h
	uc.mu.Unlock()

	uc.broadcast(ctx, snapshot)
	return snapshot, nil
}

// Snapshot 目前 huddle 狀態,沒有進行中時 Active=false
func (uc *HuddleUseCase) Snapshot(channelID string) domain.Huddle {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if h, ok := uc.huddles[channelID]; ok {
		return *h
	}
	return domain.Huddle{ChannelID: channelID}
}

func (uc *HuddleUseCase) broadcast(ctx context.Context, h domain.Huddle) {
	if uc.pubsub == nil {
		return
	}
	evt := domain.ChannelEvent{Kind: domain.ChannelEventHuddle, Huddle: &h}
	if err := uc.pubsub.Publish(ctx, domain.ChannelNotifyTopic(h.ChannelID), evt); err != nil {
		logger.Log.Errorf("huddle broadcast failed:", err, zap.String("channel", h.ChannelID))
	}
}
