package repositories

import (
	"context"
	"slices"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations.
// Lists are ordered newest first.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostsByUser(ctx context.Context, userID string) ([]models.Post, error)
	DeletePost(ctx context.Context, id string) error
	// DeletePostsByUser removes every post of the user and returns their ids.
	DeletePostsByUser(ctx context.Context, userID string) ([]string, error)
	CountPosts(ctx context.Context) (int64, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection(postsCollection)}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	_, err := r.collection.InsertOne(ctx, post)
	return mongoError(err)
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, mongoError(err)
	}
	return &post, nil
}

func (r *MongoPostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoPostRepository) ListPostsByUser(ctx context.Context, userID string) ([]models.Post, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) DeletePostsByUser(ctx context.Context, userID string) ([]string, error) {
	posts, err := r.ListPostsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if _, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *MongoPostRepository) CountPosts(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// FilePostRepository implements PostRepository on the JSON record store.
type FilePostRepository struct {
	posts *recordstore.Collection[models.Post]
}

func NewFilePostRepository(store *recordstore.Store) *FilePostRepository {
	return &FilePostRepository{posts: recordstore.NewCollection[models.Post](store, postsCollection)}
}

func (r *FilePostRepository) CreatePost(_ context.Context, post *models.Post) error {
	return r.posts.Update(func(posts []models.Post) ([]models.Post, error) {
		return append(posts, *post), nil
	})
}

func (r *FilePostRepository) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	post, ok, err := r.posts.Find(func(p models.Post) bool { return p.ID == id })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &post, nil
}

func (r *FilePostRepository) ListPosts(_ context.Context) ([]models.Post, error) {
	posts, err := r.posts.All()
	if err != nil {
		return nil, err
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

func (r *FilePostRepository) ListPostsByUser(_ context.Context, userID string) ([]models.Post, error) {
	posts, err := r.posts.Filter(func(p models.Post) bool { return p.UserID == userID })
	if err != nil {
		return nil, err
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

func (r *FilePostRepository) DeletePost(_ context.Context, id string) error {
	removed, err := r.posts.Remove(func(p models.Post) bool { return p.ID == id })
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FilePostRepository) DeletePostsByUser(_ context.Context, userID string) ([]string, error) {
	removed, err := r.posts.Remove(func(p models.Post) bool { return p.UserID == userID })
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(removed))
	for _, p := range removed {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (r *FilePostRepository) CountPosts(_ context.Context) (int64, error) {
	posts, err := r.posts.All()
	return int64(len(posts)), err
}

func sortPostsNewestFirst(posts []models.Post) {
	slices.SortStableFunc(posts, func(a, b models.Post) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
