package repositories

import (
	"context"
	"slices"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"gorm.io/gorm"
)

// CommentRepository stores post comments. Lists are ordered oldest first.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByPost(ctx context.Context, postID string) ([]models.Comment, error)
	ListCommentsByPosts(ctx context.Context, postIDs []string) ([]models.Comment, error)
	CountComments(ctx context.Context) (int64, error)
	DeleteCommentsByPosts(ctx context.Context, postIDs []string) error
	DeleteCommentsByUser(ctx context.Context, userID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PostgresCommentRepository) ListCommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at asc").Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) ListCommentsByPosts(ctx context.Context, postIDs []string) ([]models.Comment, error) {
	comments := []models.Comment{}
	if len(postIDs) == 0 {
		return comments, nil
	}
	err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Order("created_at asc").Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) CountComments(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}

func (r *PostgresCommentRepository) DeleteCommentsByPosts(ctx context.Context, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error
}

func (r *PostgresCommentRepository) DeleteCommentsByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Comment{}).Error
}

type FileCommentRepository struct {
	comments *recordstore.Collection[models.Comment]
}

func NewFileCommentRepository(store *recordstore.Store) *FileCommentRepository {
	return &FileCommentRepository{comments: recordstore.NewCollection[models.Comment](store, commentsCollection)}
}

func (r *FileCommentRepository) CreateComment(_ context.Context, comment *models.Comment) error {
	return r.comments.Update(func(comments []models.Comment) ([]models.Comment, error) {
		return append(comments, *comment), nil
	})
}

func (r *FileCommentRepository) ListCommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	return r.ListCommentsByPosts(ctx, []string{postID})
}

func (r *FileCommentRepository) ListCommentsByPosts(_ context.Context, postIDs []string) ([]models.Comment, error) {
	ids := idSet(postIDs)
	comments, err := r.comments.Filter(func(c models.Comment) bool { return ids[c.PostID] })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(comments, func(a, b models.Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return comments, nil
}

func (r *FileCommentRepository) CountComments(_ context.Context) (int64, error) {
	comments, err := r.comments.All()
	return int64(len(comments)), err
}

func (r *FileCommentRepository) DeleteCommentsByPosts(_ context.Context, postIDs []string) error {
	ids := idSet(postIDs)
	_, err := r.comments.Remove(func(c models.Comment) bool { return ids[c.PostID] })
	return err
}

func (r *FileCommentRepository) DeleteCommentsByUser(_ context.Context, userID string) error {
	_, err := r.comments.Remove(func(c models.Comment) bool { return c.UserID == userID })
	return err
}
