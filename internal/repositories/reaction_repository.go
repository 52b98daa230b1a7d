package repositories

import (
	"context"
	"slices"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReactionRepository stores at most one typed reaction per (post, user).
type ReactionRepository interface {
	// UpsertReaction sets the user's reaction type on the post, overwriting any earlier type.
	UpsertReaction(ctx context.Context, postID, userID string, reactionType models.ReactionType, at time.Time) (*models.Reaction, error)
	// DeleteReaction removes the user's reaction on the post. Removing nothing is not an error.
	DeleteReaction(ctx context.Context, postID, userID string) error
	ListReactionsByPost(ctx context.Context, postID string) ([]models.Reaction, error)
	ListReactionsByPosts(ctx context.Context, postIDs []string) ([]models.Reaction, error)
	ListReactionsByUser(ctx context.Context, userID string) ([]models.Reaction, error)
	DeleteReactionsByPosts(ctx context.Context, postIDs []string) error
	DeleteReactionsByUser(ctx context.Context, userID string) error
}

type MongoReactionRepository struct {
	collection *mongo.Collection
}

func NewMongoReactionRepository(db *mongo.Database) *MongoReactionRepository {
	return &MongoReactionRepository{collection: db.Collection(reactionsCollection)}
}

func (r *MongoReactionRepository) UpsertReaction(ctx context.Context, postID, userID string, reactionType models.ReactionType, at time.Time) (*models.Reaction, error) {
	filter := bson.M{"postId": postID, "userId": userID}
	update := bson.M{
		"$set":         bson.M{"type": reactionType, "updatedAt": at},
		"$setOnInsert": bson.M{"_id": uuid.NewString(), "createdAt": at},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var reaction models.Reaction
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&reaction); err != nil {
		return nil, mongoError(err)
	}
	return &reaction, nil
}

func (r *MongoReactionRepository) DeleteReaction(ctx context.Context, postID, userID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"postId": postID, "userId": userID})
	return err
}

func (r *MongoReactionRepository) ListReactionsByPost(ctx context.Context, postID string) ([]models.Reaction, error) {
	return r.find(ctx, bson.M{"postId": postID})
}

func (r *MongoReactionRepository) ListReactionsByPosts(ctx context.Context, postIDs []string) ([]models.Reaction, error) {
	if len(postIDs) == 0 {
		return []models.Reaction{}, nil
	}
	return r.find(ctx, bson.M{"postId": bson.M{"$in": postIDs}})
}

func (r *MongoReactionRepository) ListReactionsByUser(ctx context.Context, userID string) ([]models.Reaction, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoReactionRepository) find(ctx context.Context, filter bson.M) ([]models.Reaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reactions := []models.Reaction{}
	if err := cursor.All(ctx, &reactions); err != nil {
		return nil, err
	}
	return reactions, nil
}

func (r *MongoReactionRepository) DeleteReactionsByPosts(ctx context.Context, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"postId": bson.M{"$in": postIDs}})
	return err
}

func (r *MongoReactionRepository) DeleteReactionsByUser(ctx context.Context, userID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

type FileReactionRepository struct {
	reactions *recordstore.Collection[models.Reaction]
}

func NewFileReactionRepository(store *recordstore.Store) *FileReactionRepository {
	return &FileReactionRepository{reactions: recordstore.NewCollection[models.Reaction](store, reactionsCollection)}
}

func (r *FileReactionRepository) UpsertReaction(_ context.Context, postID, userID string, reactionType models.ReactionType, at time.Time) (*models.Reaction, error) {
	var saved models.Reaction
	err := r.reactions.Update(func(reactions []models.Reaction) ([]models.Reaction, error) {
		i := slices.IndexFunc(reactions, func(re models.Reaction) bool { return re.PostID == postID && re.UserID == userID })
		if i >= 0 {
			reactions[i].Type = reactionType
			reactions[i].UpdatedAt = at
			saved = reactions[i]
			return reactions, nil
		}
		saved = models.Reaction{
			ID:        uuid.NewString(),
			PostID:    postID,
			UserID:    userID,
			Type:      reactionType,
			CreatedAt: at,
			UpdatedAt: at,
		}
		return append(reactions, saved), nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *FileReactionRepository) DeleteReaction(_ context.Context, postID, userID string) error {
	_, err := r.reactions.Remove(func(re models.Reaction) bool { return re.PostID == postID && re.UserID == userID })
	return err
}

func (r *FileReactionRepository) ListReactionsByPost(ctx context.Context, postID string) ([]models.Reaction, error) {
	return r.ListReactionsByPosts(ctx, []string{postID})
}

func (r *FileReactionRepository) ListReactionsByPosts(_ context.Context, postIDs []string) ([]models.Reaction, error) {
	ids := idSet(postIDs)
	return r.filter(func(re models.Reaction) bool { return ids[re.PostID] })
}

func (r *FileReactionRepository) ListReactionsByUser(_ context.Context, userID string) ([]models.Reaction, error) {
	return r.filter(func(re models.Reaction) bool { return re.UserID == userID })
}

func (r *FileReactionRepository) filter(fn func(models.Reaction) bool) ([]models.Reaction, error) {
	reactions, err := r.reactions.Filter(fn)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(reactions, func(a, b models.Reaction) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return reactions, nil
}

func (r *FileReactionRepository) DeleteReactionsByPosts(_ context.Context, postIDs []string) error {
	ids := idSet(postIDs)
	_, err := r.reactions.Remove(func(re models.Reaction) bool { return ids[re.PostID] })
	return err
}

func (r *FileReactionRepository) DeleteReactionsByUser(_ context.Context, userID string) error {
	_, err := r.reactions.Remove(func(re models.Reaction) bool { return re.UserID == userID })
	return err
}
