package repository

import (
	"context"

	"workspace_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChannelRepository workspace channel 目錄
type ChannelRepository interface {
	CreateChannel(ctx context.Context, ch *domain.Channel) error
	FindByID(ctx context.Context, channelID string) (*domain.Channel, error)
	ListForMember(ctx context.Context, userID string) ([]domain.Channel, error)
}

type channelRepository struct {
	coll *mongo.Collection
}

// NewMongoChannelRepository create a ChannelRepository
func NewMongoChannelRepository(db *mongo.Database) ChannelRepository {
	return &channelRepository{
		coll: db.Collection("channels"),
	}
}

func (r *channelRepository) CreateChannel(ctx context.Context, ch *domain.Channel) error {
	_, err := r.coll.InsertOne(ctx, ch)
	return err
}

func (r *channelRepository) FindByID(ctx context.Context, channelID string) (*domain.Channel, error) {
	filter := bson.M{"_id": channelID}
	var ch domain.Channel
	if err := r.coll.FindOne(ctx, filter).Decode(&ch); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}

// ListForMember 取回 userID 所屬的 channel,名稱升序
func (r *channelRepository) ListForMember(ctx context.Context, userID string) ([]domain.Channel, error) {
	filter := bson.M{"members": userID}
	opts := options.Find()
	opts.SetSort(bson.M{"name": 1})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var channels []domain.Channel
	if err := cur.All(ctx, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}
