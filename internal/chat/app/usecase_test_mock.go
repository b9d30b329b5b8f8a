package app

import (
	"context"
	"workspace_chat_service/internal/chat/domain"
	"workspace_chat_service/internal/chat/repository"

	"github.com/stretchr/testify/mock"
)

// MockChannelRepository Mock ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

// CreateChannel moke create channel
func (m *MockChannelRepository) CreateChannel(ctx context.Context, ch *domain.Channel) error {
	args := m.Called(ctx, ch)
	return args.Error(0)
}

// FindByID moke find channel by channel id
func (m *MockChannelRepository) FindByID(ctx context.Context, channelID string) (*domain.Channel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Channel), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListForMember moke list channels by member
func (m *MockChannelRepository) ListForMember(ctx context.Context, userID string) ([]domain.Channel, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Channel), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockArchiveRepository Mock ArchiveRepository
type MockArchiveRepository struct {
	mock.Mock
}

// InsertBucket moke insert msg bucket
func (m *MockArchiveRepository) InsertBucket(ctx context.Context, bucket *domain.MessageBucket) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

// FindBucket moke find channel message date by bucket
func (m *MockArchiveRepository) FindBucket(ctx context.Context, channelID, date string) (*domain.MessageBucket, error) {
	args := m.Called(ctx, channelID, date)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.MessageBucket), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateBucket moke update msg bucket
func (m *MockArchiveRepository) UpdateBucket(ctx context.Context, bucket *domain.MessageBucket) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

// FindChannelMessages moke find all channel messages
func (m *MockArchiveRepository) FindChannelMessages(ctx context.Context, channelID string) ([]domain.Message, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// CountUnreadByChannel moke get count unread by user id
func (m *MockArchiveRepository) CountUnreadByChannel(ctx context.Context, userID string) ([]domain.ChannelUnreadInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ChannelUnreadInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPubSub Mock PubSub
type MockPubSub struct {
	mock.Mock
}

// Publish moke publisher
func (m *MockPubSub) Publish(ctx context.Context, topic string, payload interface{}) error {
	args := m.Called(ctx, topic, payload)
	return args.Error(0)
}

// Subscribe moke subscriber
func (m *MockPubSub) Subscribe(ctx context.Context, topic string, handler func(payload []byte)) (repository.Subscription, error) {
	args := m.Called(ctx, topic, handler)
	if args.Get(0) != nil {
		return args.Get(0).(repository.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCursorRepository Mock CursorRepository
type MockCursorRepository struct {
	mock.Mock
}

// Load moke load cursor
func (m *MockCursorRepository) Load(ctx context.Context, userID, channelID string) (int64, error) {
	args := m.Called(ctx, userID, channelID)
	return args.Get(0).(int64), args.Error(1)
}

// Save moke save cursor
func (m *MockCursorRepository) Save(ctx context.Context, userID, channelID string, timestamp int64) error {
	args := m.Called(ctx, userID, channelID, timestamp)
	return args.Error(0)
}

// MockNotifier Mock Notifier
type MockNotifier struct {
	mock.Mock
}

// Notify moke mention notify
func (m *MockNotifier) Notify(authorName, messageText string) {
	m.Called(authorName, messageText)
}
