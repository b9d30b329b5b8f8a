package repository

import (
	"context"
	"fmt"

	"workspace_chat_service/pkg/database"

	"github.com/go-redis/redis/v8"
)

// CursorRepository 持久化每個 (user, channel) 的 last-read timestamp
// 必須跨進程重啟存活;實際儲存機制是外部協作者
type CursorRepository interface {
	// Load 回傳持久化的 cursor 值,不存在時回傳 (0, nil)
	Load(ctx context.Context, userID, channelID string) (int64, error)
	// Save 寫入 cursor 值,fire-and-forget 語義由 caller 決定
	Save(ctx context.Context, userID, channelID string, timestamp int64) error
}

type redisCursorRepository struct {
	repo database.RedisRepository[int64]
}

// NewRedisCursorRepository create a CursorRepository backed by redis
func NewRedisCursorRepository(client *redis.Client) CursorRepository {
	return &redisCursorRepository{
		repo: database.NewRedisRepository[int64](client),
	}
}

func cursorKey(userID, channelID string) string {
	return fmt.Sprintf("cursor:%s:%s", userID, channelID)
}

func (r *redisCursorRepository) Load(ctx context.Context, userID, channelID string) (int64, error) {
	ts, err := r.repo.Get(ctx, cursorKey(userID, channelID))
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("load cursor: %w", err)
	}
	return ts, nil
}

func (r *redisCursorRepository) Save(ctx context.Context, userID, channelID string, timestamp int64) error {
	// cursor 永不過期,channel membership 存在期間都要保留
	return r.repo.Set(ctx, cursorKey(userID, channelID), timestamp, 0)
}
