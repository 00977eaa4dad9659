package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/gvone/gvone-api/pkg/errors"
)

type Repository struct {
	channels *mongo.Collection
	posts    *mongo.Collection
}

// NewRepository creates the repository and ensures the dedup index
func NewRepository(db *mongo.Database) *Repository {
	posts := db.Collection("channel_posts")

	_, _ = posts.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// One stored post per (channel, content hash); re-fetched
			// feed items bounce off this instead of duplicating.
			Keys: bson.D{
				{Key: "channelId", Value: 1},
				{Key: "refId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "channelId", Value: 1},
				{Key: "publishedAt", Value: -1},
			},
		},
	})

	return &Repository{
		channels: db.Collection("channels"),
		posts:    posts,
	}
}

func (r *Repository) GetChannel(ctx context.Context, id string) (*Channel, error) {
	var channel Channel
	err := r.channels.FindOne(ctx, bson.M{"_id": id}).Decode(&channel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("channel %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &channel, nil
}

// ListChannels returns channels to poll, capped so a runaway channel
// list cannot stall the run.
func (r *Repository) ListChannels(ctx context.Context, limit int) ([]Channel, error) {
	opts := options.Find().SetLimit(int64(limit))

	cursor, err := r.channels.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var channels []Channel
	if err = cursor.All(ctx, &channels); err != nil {
		return nil, err
	}

	return channels, nil
}

// InsertPost stores one ingested item. Returns false when the unique
// (channelId, refId) index says we already have it.
func (r *Repository) InsertPost(ctx context.Context, post *ChannelPost) (bool, error) {
	result, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return true, nil
}
