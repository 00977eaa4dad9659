package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/gvone/gvone-api/pkg/errors"
)

// Repository is the Mongo-backed Store. Counters go through a single
// FindOneAndUpdate $inc so increment-and-read is one atomic step, and
// the monotone flags flip through filtered updates that tell the
// caller whether it won the transition.
type Repository struct {
	reports  *mongo.Collection
	posts    *mongo.Collection
	profiles *mongo.Collection
	accounts *mongo.Collection
}

// NewRepository creates the repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	reports := db.Collection("reports")

	_, _ = reports.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Unique compound index - one report per reporter per post.
			// Closes the race where two identical reports pass the
			// duplicate pre-check at the same time.
			Keys: bson.D{
				{Key: "postId", Value: 1},
				{Key: "reporterId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			// Audit listing (newest first)
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})

	profiles := db.Collection("profiles")
	_, _ = profiles.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		// Sibling lookups at the account level
		Keys: bson.D{
			{Key: "ownerId", Value: 1},
			{Key: "isBlocked", Value: 1},
		},
	})

	return &Repository{
		reports:  reports,
		posts:    db.Collection("posts"),
		profiles: profiles,
		accounts: db.Collection("accounts"),
	}
}

// HasReport checks whether the reporter already has a ledger entry for
// this post. Read-only; the unique index is the final arbiter.
func (r *Repository) HasReport(ctx context.Context, postID, reporterID string) (bool, error) {
	filter := bson.M{
		"postId":     postID,
		"reporterId": reporterID,
	}

	count, err := r.reports.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// InsertReport appends a ledger entry. A unique index violation maps
// to ErrDuplicateReport so concurrent duplicates surface the same way
// as ones caught by the pre-check.
func (r *Repository) InsertReport(ctx context.Context, report *Report) error {
	result, err := r.reports.InsertOne(ctx, report)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicateReport
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return nil
}

// ListReports returns ledger entries for auditing, newest first.
// postID narrows the listing to one post when non-empty.
func (r *Repository) ListReports(ctx context.Context, postID string, offset, limit int) ([]Report, int64, error) {
	filter := bson.M{}
	if postID != "" {
		filter["postId"] = postID
	}

	total, err := r.reports.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.reports.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var reports []Report
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// GetPost fetches a post by ID
func (r *Repository) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// IncrementPostReports bumps reportCount and returns the post as it
// looks after the increment. One atomic read-modify-write; concurrent
// calls never lose updates.
func (r *Repository) IncrementPostReports(ctx context.Context, id string) (*Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post Post
	err := r.posts.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"reportCount": 1}},
		opts,
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}

	return &post, nil
}

// MarkPostBlocked flips isBlocked false -> true. Returns true only for
// the caller that won the transition; everyone else sees false and
// must not cascade.
func (r *Repository) MarkPostBlocked(ctx context.Context, id string, at time.Time) (bool, error) {
	filter := bson.M{
		"_id":       id,
		"isBlocked": bson.M{"$ne": true},
	}
	update := bson.M{
		"$set": bson.M{
			"isBlocked": true,
			"blockedAt": at,
		},
	}

	result, err := r.posts.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount == 1, nil
}

// IncrementProfileBlockedPosts bumps blockedPostCount atomically and
// returns the updated profile.
func (r *Repository) IncrementProfileBlockedPosts(ctx context.Context, id string) (*Profile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile Profile
	err := r.profiles.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"blockedPostCount": 1}},
		opts,
	).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("profile %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}

	return &profile, nil
}

// MarkProfileBlocked flips the profile's isBlocked flag, compare-and-set
func (r *Repository) MarkProfileBlocked(ctx context.Context, id string) (bool, error) {
	filter := bson.M{
		"_id":       id,
		"isBlocked": bson.M{"$ne": true},
	}
	update := bson.M{"$set": bson.M{"isBlocked": true}}

	result, err := r.profiles.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount == 1, nil
}

// CountBlockedProfiles counts blocked siblings under one account,
// evaluated live at decision time rather than kept as a counter.
func (r *Repository) CountBlockedProfiles(ctx context.Context, ownerID string) (int64, error) {
	filter := bson.M{
		"ownerId":   ownerID,
		"isBlocked": true,
	}
	return r.profiles.CountDocuments(ctx, filter)
}

// ListProfilesByOwner returns every profile under an account, blocked
// or not. Feeds the suspension sweep.
func (r *Repository) ListProfilesByOwner(ctx context.Context, ownerID string) ([]Profile, error) {
	cursor, err := r.profiles.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []Profile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}

	return profiles, nil
}

// GetAccount fetches an account by ID
func (r *Repository) GetAccount(ctx context.Context, id string) (*Account, error) {
	var account Account
	err := r.accounts.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &account, nil
}

// MarkAccountSuspended flips status active -> suspended, compare-and-set.
// Never reactivates.
func (r *Repository) MarkAccountSuspended(ctx context.Context, id string) (bool, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$ne": AccountSuspended},
	}
	update := bson.M{"$set": bson.M{"status": AccountSuspended}}

	result, err := r.accounts.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.ModifiedCount == 1, nil
}
