package repositories

import (
	"context"
	"slices"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoryRepository defines the interface for story operations.
// MongoDB also drops stories physically through the TTL index on createdAt.
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	// ListStoriesSince returns stories created strictly after cutoff, newest first.
	ListStoriesSince(ctx context.Context, cutoff time.Time) ([]models.Story, error)
	DeleteStory(ctx context.Context, id string) error
	DeleteStoriesByUser(ctx context.Context, userID string) ([]string, error)
	CountStories(ctx context.Context) (int64, error)
}

type MongoStoryRepository struct {
	collection *mongo.Collection
}

func NewMongoStoryRepository(db *mongo.Database) *MongoStoryRepository {
	return &MongoStoryRepository{collection: db.Collection(storiesCollection)}
}

func (r *MongoStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	_, err := r.collection.InsertOne(ctx, story)
	return mongoError(err)
}

func (r *MongoStoryRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	var story models.Story
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&story); err != nil {
		return nil, mongoError(err)
	}
	return &story, nil
}

func (r *MongoStoryRepository) ListStoriesSince(ctx context.Context, cutoff time.Time) ([]models.Story, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"createdAt": bson.M{"$gt": cutoff}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stories := []models.Story{}
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (r *MongoStoryRepository) DeleteStory(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoStoryRepository) DeleteStoriesByUser(ctx context.Context, userID string) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if _, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *MongoStoryRepository) CountStories(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

type FileStoryRepository struct {
	stories *recordstore.Collection[models.Story]
}

func NewFileStoryRepository(store *recordstore.Store) *FileStoryRepository {
	return &FileStoryRepository{stories: recordstore.NewCollection[models.Story](store, storiesCollection)}
}

func (r *FileStoryRepository) CreateStory(_ context.Context, story *models.Story) error {
	return r.stories.Update(func(stories []models.Story) ([]models.Story, error) {
		return append(stories, *story), nil
	})
}

func (r *FileStoryRepository) GetStoryByID(_ context.Context, id string) (*models.Story, error) {
	story, ok, err := r.stories.Find(func(s models.Story) bool { return s.ID == id })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &story, nil
}

func (r *FileStoryRepository) ListStoriesSince(_ context.Context, cutoff time.Time) ([]models.Story, error) {
	stories, err := r.stories.Filter(func(s models.Story) bool { return s.CreatedAt.After(cutoff) })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(stories, func(a, b models.Story) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return stories, nil
}

func (r *FileStoryRepository) DeleteStory(_ context.Context, id string) error {
	removed, err := r.stories.Remove(func(s models.Story) bool { return s.ID == id })
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FileStoryRepository) DeleteStoriesByUser(_ context.Context, userID string) ([]string, error) {
	removed, err := r.stories.Remove(func(s models.Story) bool { return s.UserID == userID })
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(removed))
	for _, s := range removed {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (r *FileStoryRepository) CountStories(_ context.Context) (int64, error) {
	stories, err := r.stories.All()
	return int64(len(stories)), err
}
