package app

import (
	"context"
	"sync"
	"time"

	"workspace_chat_service/internal/chat/repository"
	"workspace_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// CursorTracker 追蹤 local user 在各 channel 的 last-read timestamp
// 只會向前推進;persistence 失敗僅記 log,本地狀態照常前進
type CursorTracker struct {
	mu      sync.Mutex
	userID  string
	cursors map[string]int64 // channelID -> last read (unix ms)
	loaded  map[string]bool
	repo    repository.CursorRepository
}

// NewCursorTracker create CursorTracker for one user
func NewCursorTracker(userID string, repo repository.CursorRepository) *CursorTracker {
	return &CursorTracker{
		userID:  userID,
		cursors: make(map[string]int64),
		loaded:  make(map[string]bool),
		repo:    repo,
	}
}

// EnsureLoaded 第一次看某 channel 時載入持久化的 cursor
// 沒有持久化值時用 fallback (最新訊息 timestamp 或 now) 初始化
func (t *CursorTracker) EnsureLoaded(ctx context.Context, channelID string, fallback int64) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.loaded[channelID] {
		return t.cursors[channelID]
	}
	t.loaded[channelID] = true

	if t.repo != nil {
		ts, err := t.repo.Load(ctx, t.userID, channelID)
		if err != nil {
			logger.Log.Errorf("load read cursor failed:", err, zap.String("channel", channelID))
		} else if ts > 0 {
			t.cursors[channelID] = ts
			return ts
		}
	}

	if fallback <= 0 {
		fallback = time.Now().UnixMilli()
	}
	t.cursors[channelID] = fallback
	t.persist(ctx, channelID, fallback)
	return fallback
}

// AdvanceTo 單調推進 cursor,timestamp <= current 時為 no-op
// 回傳 true 表示有前進,caller 以此 gate presence ping 的發送
func (t *CursorTracker) AdvanceTo(ctx context.Context, channelID string, timestamp int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timestamp <= t.cursors[channelID] {
		return false
	}
	t.cursors[channelID] = timestamp
	t.persist(ctx, channelID, timestamp)
	return true
}

// Current 目前的 last-read timestamp,沒看過的 channel 為 0
func (t *CursorTracker) Current(channelID string) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursors[channelID]
}

func (t *CursorTracker) persist(ctx context.Context, channelID string, ts int64) {
	if t.repo == nil {
		return
	}
	if err := t.repo.Save(ctx, t.userID, channelID, ts); err != nil {
		// 本地已前進,持久化失敗只降級
		logger.Log.Errorf("save read cursor failed:", err, zap.String("channel", channelID))
	}
}
