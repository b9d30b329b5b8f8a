package repository

import (
	"context"
	"fmt"

	"workspace_chat_service/internal/chat/domain"
	"workspace_chat_service/pkg"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ArchiveRepository 訊息落地 (per-channel per-day bucket)
// 是 lifecycle 啟動 channel 時的 snapshot 來源
type ArchiveRepository interface {
	// InsertBucket 在指定桶中新增訊息,桶不存在時創建
	InsertBucket(ctx context.Context, bucket *domain.MessageBucket) error
	// FindBucket 查詢指定 channel 及日期的桶
	FindBucket(ctx context.Context, channelID, date string) (*domain.MessageBucket, error)
	// UpdateBucket 更新桶內的訊息 (例如更新已讀狀態)
	UpdateBucket(ctx context.Context, bucket *domain.MessageBucket) error
	// FindChannelMessages 取回 channel 全部訊息,日期升序
	FindChannelMessages(ctx context.Context, channelID string) ([]domain.Message, error)
	// CountUnreadByChannel 統計該 user 各 channel 的未讀數
	CountUnreadByChannel(ctx context.Context, userID string) ([]domain.ChannelUnreadInfo, error)
}

type archiveRepository struct {
	coll *mongo.Collection
}

// NewMongoArchiveRepository create an ArchiveRepository
func NewMongoArchiveRepository(db *mongo.Database) ArchiveRepository {
	return &archiveRepository{
		coll: db.Collection("chat_messages"),
	}
}

func (r *archiveRepository) FindBucket(ctx context.Context, channelID, date string) (*domain.MessageBucket, error) {
	filter := bson.M{"channel_id": channelID, "date": date}
	var bucket domain.MessageBucket
	err := r.coll.FindOne(ctx, filter).Decode(&bucket)
	if err != nil {
		return nil, err
	}
	return &bucket, nil
}

// InsertBucket 寫入新的桶
func (r *archiveRepository) InsertBucket(ctx context.Context, bucket *domain.MessageBucket) error {
	_, err := r.coll.InsertOne(ctx, bucket)
	return err
}

// UpdateBucket 以 (channel, date) 覆寫桶內容
func (r *archiveRepository) UpdateBucket(ctx context.Context, bucket *domain.MessageBucket) error {
	filter := bson.M{"channel_id": bucket.ChannelID, "date": bucket.Date}
	update := bson.M{"$set": bucket}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	return err
}

// FindChannelMessages 取回 channel 全部訊息,桶日期升序攤平
func (r *archiveRepository) FindChannelMessages(ctx context.Context, channelID string) ([]domain.Message, error) {
	filter := bson.M{"channel_id": channelID}
	opts := options.Find()
	opts.SetSort(bson.M{"date": 1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var buckets []domain.MessageBucket
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, err
	}

	var messages []domain.Message
	for _, bucket := range buckets {
		messages = append(messages, bucket.Messages...)
	}
	return messages, nil
}

// CountUnreadByChannel 統計 userID 各 channel 的未讀數
func (r *archiveRepository) CountUnreadByChannel(ctx context.Context, userID string) ([]domain.ChannelUnreadInfo, error) {
	pipeline := mongo.Pipeline{
		// 1. 展開每個 bucket 的 messages 陣列
		bson.D{{Key: "$unwind", Value: "$messages"}},
		// 2. 過濾出未讀訊息 (seen_by 不包含 userID)
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "messages.seen_by", Value: bson.D{{Key: "$ne", Value: userID}}},
		}}},
		// 3. 按 channel_id 分組,計算未讀數量和該組未讀訊息中的最大時間戳
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$channel_id"},
			{Key: "unread_count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "last_unread_timestamp", Value: bson.D{{Key: "$max", Value: "$messages.timestamp"}}},
		}}},
		// 4. 根據 last_unread_timestamp 降序排序
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "last_unread_timestamp", Value: -1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate error: %w", err)
	}

	var results []domain.ChannelUnreadInfo
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("cursor All error: %w", err)
	}

	return results, nil
}

// HasUnread 檢查桶中是否有 userID 未讀的訊息
func HasUnread(bucket *domain.MessageBucket, userID string) bool {
	if bucket == nil {
		return false
	}
	for _, msg := range bucket.Messages {
		if !pkg.Contains(msg.SeenBy, userID) {
			return true
		}
	}
	return false
}
