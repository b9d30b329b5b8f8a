package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"workspace_chat_service/internal/chat/domain"
	"workspace_chat_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// 測試 Post 完整寫入路徑: store + archive + broadcast
func TestMessageUseCase_Post(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	channelID := uuid.New().String()
	today := time.Now().UTC().Format("2006-01-02")

	mockChannelRepo := new(MockChannelRepository)
	mockArchive := new(MockArchiveRepository)
	mockPubSub := new(MockPubSub)

	mockChannelRepo.On("FindByID", ctx, channelID).Return(&domain.Channel{
		ID:      channelID,
		Members: []string{"alice", "bob"},
	}, nil)

	// 當天 bucket 不存在,需要新建
	mockArchive.On("FindBucket", ctx, channelID, today).Return(nil, errors.New("not found"))
	mockArchive.On("InsertBucket", ctx, mock.Anything).Return(nil)

	mockPubSub.On("Publish", ctx, domain.ChannelNotifyTopic(channelID), mock.Anything).Return(nil)

	uc := NewMessageUseCase(NewMessageStore(), mockChannelRepo, mockArchive, mockPubSub, 0)
	msgID, err := uc.Post(ctx, channelID, "alice", "Alice", "hello there", "")

	assert.NoError(t, err)
	assert.NotEmpty(t, msgID)

	// store 收下且作者已 seen 自己
	got, err := uc.store.Get(msgID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"alice"}, got.SeenBy)

	mockChannelRepo.AssertExpectations(t)
	mockArchive.AssertExpectations(t)
	mockPubSub.AssertExpectations(t)
}

// 測試 channel 不存在時拒絕寫入
func TestMessageUseCase_PostChannelMissing(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockChannelRepo := new(MockChannelRepository)
	mockChannelRepo.On("FindByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

	uc := NewMessageUseCase(NewMessageStore(), mockChannelRepo, nil, nil, 0)
	_, err := uc.Post(ctx, "ghost", "alice", "Alice", "hello", "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockChannelRepo.AssertExpectations(t)
}

// 測試 parent 不存在的 reply 照常寫入 (orphan 容忍)
func TestMessageUseCase_PostOrphanReply(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	channelID := uuid.New().String()

	mockChannelRepo := new(MockChannelRepository)
	mockChannelRepo.On("FindByID", ctx, channelID).Return(&domain.Channel{ID: channelID}, nil)

	uc := NewMessageUseCase(NewMessageStore(), mockChannelRepo, nil, nil, 0)
	msgID, err := uc.Post(ctx, channelID, "bob", "Bob", "replying to nothing", "gone-parent")

	assert.NoError(t, err)

	replies := uc.Replies("gone-parent")
	assert.Len(t, replies, 1)
	assert.Equal(t, msgID, replies[0].ID)

	// orphan 不進 top-level timeline
	sections, _ := uc.Timeline(channelID, 0)
	assert.Empty(t, sections)
}

// 測試 append log 重複投遞: 第二次為 no-op
func TestMessageUseCase_IngestDuplicate(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	channelID := uuid.New().String()

	msg := msgAt("m1", channelID, "alice", time.Now().UnixMilli())
	date := time.UnixMilli(msg.Timestamp).UTC().Format("2006-01-02")

	mockArchive := new(MockArchiveRepository)
	mockPubSub := new(MockPubSub)

	mockArchive.On("FindBucket", ctx, channelID, date).Return(nil, errors.New("not found")).Once()
	mockArchive.On("InsertBucket", ctx, mock.Anything).Return(nil).Once()
	mockPubSub.On("Publish", ctx, domain.ChannelNotifyTopic(channelID), mock.Anything).Return(nil).Once()

	uc := NewMessageUseCase(NewMessageStore(), nil, mockArchive, mockPubSub, 0)

	assert.NoError(t, uc.Ingest(ctx, msg))
	assert.NoError(t, uc.Ingest(ctx, msg)) // 重複 id,不再落地也不再廣播

	assert.Equal(t, 1, uc.store.Len(channelID))
	mockArchive.AssertExpectations(t)
	mockPubSub.AssertExpectations(t)
}

// 測試 broadcast 失敗不影響寫入結果
func TestMessageUseCase_PostBroadcastDegrades(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	channelID := uuid.New().String()
	today := time.Now().UTC().Format("2006-01-02")

	mockChannelRepo := new(MockChannelRepository)
	mockArchive := new(MockArchiveRepository)
	mockPubSub := new(MockPubSub)

	mockChannelRepo.On("FindByID", ctx, channelID).Return(&domain.Channel{ID: channelID}, nil)
	mockArchive.On("FindBucket", ctx, channelID, today).Return(nil, errors.New("not found"))
	mockArchive.On("InsertBucket", ctx, mock.Anything).Return(nil)
	mockPubSub.On("Publish", ctx, domain.ChannelNotifyTopic(channelID), mock.Anything).
		Return(errors.New("redis down"))

	uc := NewMessageUseCase(NewMessageStore(), mockChannelRepo, mockArchive, mockPubSub, 0)
	msgID, err := uc.Post(ctx, channelID, "alice", "Alice", "hello", "")

	assert.NoError(t, err)
	assert.NotEmpty(t, msgID)
}

// 測試 MarkSeen 同步更新 store 與 archive bucket
func TestMessageUseCase_MarkSeen(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	channelID := uuid.New().String()

	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC).UnixMilli()
	msg := msgAt("m1", channelID, "alice", ts)
	msg.SeenBy = []string{"alice"}
	date := "2025-03-10"

	store := NewMessageStore()
	assert.NoError(t, store.Append(msg))

	mockArchive := new(MockArchiveRepository)
	mockArchive.On("FindBucket", ctx, channelID, date).Return(&domain.MessageBucket{
		ChannelID: channelID,
		Date:      date,
		Messages:  []domain.Message{msg},
	}, nil)
	mockArchive.On("UpdateBucket", ctx, mock.Anything).Return(nil)

	uc := NewMessageUseCase(store, nil, mockArchive, nil, 0)

	assert.NoError(t, uc.MarkSeen(ctx, channelID, "m1", "bob"))

	got, _ := store.Get("m1")
	assert.Equal(t, []string{"alice", "bob"}, got.SeenBy)

	mockArchive.AssertExpectations(t)
}

// 測試冷啟動 snapshot 回填,第二次 activate 不再打 archive
func TestMessageUseCase_LoadSnapshot(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	channelID := uuid.New().String()

	snapshot := []domain.Message{
		msgAt("m1", channelID, "alice", 1000),
		msgAt("m2", channelID, "bob", 2000),
	}

	mockArchive := new(MockArchiveRepository)
	mockArchive.On("FindChannelMessages", ctx, channelID).Return(snapshot, nil).Once()

	uc := NewMessageUseCase(NewMessageStore(), nil, mockArchive, nil, 0)

	assert.NoError(t, uc.LoadSnapshot(ctx, channelID))
	assert.Equal(t, 2, uc.store.Len(channelID))

	// store 已有資料,不再回填
	assert.NoError(t, uc.LoadSnapshot(ctx, channelID))

	mockArchive.AssertExpectations(t)
}

// 測試 unread 統計走 archive aggregation
func TestMessageUseCase_Unread(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockArchive := new(MockArchiveRepository)
	mockUnread := []domain.ChannelUnreadInfo{
		{ChannelID: "ch-1", UnreadCount: 5},
		{ChannelID: "ch-2", UnreadCount: 2},
	}
	mockArchive.On("CountUnreadByChannel", ctx, "alice").Return(mockUnread, nil)

	uc := NewMessageUseCase(NewMessageStore(), nil, mockArchive, nil, 0)
	result, err := uc.Unread(ctx, "alice")

	assert.NoError(t, err)
	assert.Equal(t, mockUnread, result)

	mockArchive.AssertExpectations(t)
}
