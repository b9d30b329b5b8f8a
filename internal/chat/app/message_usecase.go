package app

import (
	"context"
	"errors"
	"time"

	"workspace_chat_service/internal/chat/domain"
	"workspace_chat_service/internal/chat/repository"
	"workspace_chat_service/pkg"
	"workspace_chat_service/pkg/logger"
	errprocess "workspace_chat_service/pkg/err"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageUseCase 負責訊息的寫入路徑與 timeline 的讀取路徑
// store 是 canonical 序列,archive 只是落地與 snapshot 來源
type MessageUseCase struct {
	store       *MessageStore
	channelRepo repository.ChannelRepository
	archive     repository.ArchiveRepository
	pubsub      repository.PubSub

	groupingWindow time.Duration
}

// NewMessageUseCase init create message use case
func NewMessageUseCase(
	store *MessageStore,
	channelRepo repository.ChannelRepository,
	archive repository.ArchiveRepository,
	pubsub repository.PubSub,
	groupingWindow time.Duration,
) *MessageUseCase {
	if groupingWindow <= 0 {
		groupingWindow = domain.DefaultGroupingWindow
	}
	return &MessageUseCase{
		store:          store,
		channelRepo:    channelRepo,
		archive:        archive,
		pubsub:         pubsub,
		groupingWindow: groupingWindow,
	}
}

// Post 本地 user 發送訊息
func (uc *MessageUseCase) Post(ctx context.Context, channelID, authorID, authorName, content, parentID string) (string, error) {
	// 1. 檢查 channel 是否存在
	ch, err := uc.channelRepo.FindByID(ctx, channelID)
	if err != nil {
		return "", err
	}
	if ch == nil {
		return "", errprocess.Set("channel not found")
	}

	// parent 不存在時照常寫入,顯示層當 orphan 處理
	if parentID != "" {
		if _, err := uc.store.Get(parentID); errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warn("reply parent missing, keeping as orphan",
				zap.String("parent_id", parentID), zap.String("channel", channelID))
		}
	}

	msg := domain.Message{
		ID:         uuid.New().String(),
		ChannelID:  channelID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		Timestamp:  time.Now().UnixMilli(),
		ParentID:   parentID,
		SeenBy:     []string{authorID},
	}

	if err := uc.store.Append(msg); err != nil {
		return "", err
	}

	if err := uc.archiveAppend(ctx, msg); err != nil {
		// store 已收下,落地失敗往上報,訊息完整性不能靜默丟失
		return "", err
	}

	uc.broadcast(ctx, msg)

	return msg.ID, nil
}

// Ingest 後端 append log 送來的訊息
// 重複 id 視為已投遞過,直接略過
func (uc *MessageUseCase) Ingest(ctx context.Context, msg domain.Message) error {
	if err := uc.store.Append(msg); err != nil {
		if errors.Is(err, domain.ErrDuplicateID) {
			return nil
		}
		return err
	}

	if err := uc.archiveAppend(ctx, msg); err != nil {
		return err
	}

	uc.broadcast(ctx, msg)
	return nil
}

// broadcast ephemeral 通知,失敗靜默降級,不影響訊息流
func (uc *MessageUseCase) broadcast(ctx context.Context, msg domain.Message) {
	if uc.pubsub == nil {
		return
	}
	evt := domain.ChannelEvent{Kind: domain.ChannelEventMessage, Message: &msg}
	if err := uc.pubsub.Publish(ctx, domain.ChannelNotifyTopic(msg.ChannelID), evt); err != nil {
		logger.Log.Errorf("message broadcast failed:", err, zap.String("channel", msg.ChannelID))
	}
}

// archiveAppend 寫入當日 bucket,桶不存在時創建
func (uc *MessageUseCase) archiveAppend(ctx context.Context, msg domain.Message) error {
	if uc.archive == nil {
		return nil
	}

	date := time.UnixMilli(msg.Timestamp).UTC().Format("2006-01-02")
	bucket, err := uc.archive.FindBucket(ctx, msg.ChannelID, date)
	if err != nil || bucket == nil {
		bucket = &domain.MessageBucket{
			ChannelID: msg.ChannelID,
			Date:      date,
			Messages:  []domain.Message{msg},
		}
		return uc.archive.InsertBucket(ctx, bucket)
	}

	bucket.Messages = append(bucket.Messages, msg)
	return uc.archive.UpdateBucket(ctx, bucket)
}

// LoadSnapshot channel 冷啟動時從 archive 回填 store
func (uc *MessageUseCase) LoadSnapshot(ctx context.Context, channelID string) error {
	if uc.archive == nil || uc.store.Len(channelID) > 0 {
		return nil
	}

	msgs, err := uc.archive.FindChannelMessages(ctx, channelID)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		if err := uc.store.Append(msg); err != nil && !errors.Is(err, domain.ErrDuplicateID) {
			return err
		}
	}
	return nil
}

// MarkSeen 標記已讀,store 與 archive 各更新一次
func (uc *MessageUseCase) MarkSeen(ctx context.Context, channelID, messageID, userID string) error {
	msg, err := uc.store.Get(messageID)
	if err != nil {
		return err
	}

	if err := uc.store.MarkSeen(channelID, messageID, userID); err != nil {
		return err
	}

	if uc.archive == nil {
		return nil
	}

	date := time.UnixMilli(msg.Timestamp).UTC().Format("2006-01-02")
	bucket, err := uc.archive.FindBucket(ctx, channelID, date)
	if err != nil || bucket == nil {
		return errprocess.Set("bucket not found")
	}

	updated := false
	for i, m := range bucket.Messages {
		if m.ID == messageID {
			if !pkg.Contains(m.SeenBy, userID) {
				bucket.Messages[i].SeenBy = append(bucket.Messages[i].SeenBy, userID)
				updated = true
			}
			break
		}
	}
	if !updated {
		return nil
	}
	return uc.archive.UpdateBucket(ctx, bucket)
}

// Timeline 回傳 viewer 視角的 sections 與 unread boundary index
func (uc *MessageUseCase) Timeline(channelID string, lastRead int64) ([]domain.Section, int) {
	return BuildSections(uc.store.TopLevel(channelID), lastRead, uc.groupingWindow)
}

// Replies thread 讀取路徑
func (uc *MessageUseCase) Replies(parentID string) []domain.Message {
	return uc.store.ListReplies(parentID)
}

// Unread get user all channel unread info
func (uc *MessageUseCase) Unread(ctx context.Context, userID string) ([]domain.ChannelUnreadInfo, error) {
	if uc.archive == nil {
		return nil, nil
	}
	return uc.archive.CountUnreadByChannel(ctx, userID)
}

// Latest 目前 channel 最新訊息
func (uc *MessageUseCase) Latest(channelID string) (domain.Message, bool) {
	return uc.store.Latest(channelID)
}
