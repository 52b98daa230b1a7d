package repositories

import (
	"context"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeRepository stores the boolean like membership of users on posts.
type LikeRepository interface {
	// ToggleLike adds the like if absent or removes it if present, and reports the new state.
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
	ListLikesByPosts(ctx context.Context, postIDs []string) ([]models.Like, error)
	CountLikes(ctx context.Context) (int64, error)
	DeleteLikesByPosts(ctx context.Context, postIDs []string) error
	DeleteLikesByUser(ctx context.Context, userID string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		liked = true
		return gormError(tx.Create(&models.Like{ID: uuid.NewString(), PostID: postID, UserID: userID}).Error)
	})
	return liked, err
}

func (r *PostgresLikeRepository) ListLikesByPosts(ctx context.Context, postIDs []string) ([]models.Like, error) {
	likes := []models.Like{}
	if len(postIDs) == 0 {
		return likes, nil
	}
	err := r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Order("created_at asc").Find(&likes).Error
	return likes, err
}

func (r *PostgresLikeRepository) CountLikes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Count(&count).Error
	return count, err
}

func (r *PostgresLikeRepository) DeleteLikesByPosts(ctx context.Context, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error
}

func (r *PostgresLikeRepository) DeleteLikesByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Like{}).Error
}

type FileLikeRepository struct {
	likes *recordstore.Collection[models.Like]
	now   func() time.Time
}

func NewFileLikeRepository(store *recordstore.Store) *FileLikeRepository {
	return &FileLikeRepository{likes: recordstore.NewCollection[models.Like](store, likesCollection), now: time.Now}
}

func (r *FileLikeRepository) ToggleLike(_ context.Context, postID, userID string) (bool, error) {
	liked := false
	err := r.likes.Update(func(likes []models.Like) ([]models.Like, error) {
		kept := likes[:0]
		for _, l := range likes {
			if l.PostID == postID && l.UserID == userID {
				continue
			}
			kept = append(kept, l)
		}
		if len(kept) < len(likes) {
			return kept, nil
		}
		liked = true
		return append(kept, models.Like{ID: uuid.NewString(), PostID: postID, UserID: userID, CreatedAt: r.now()}), nil
	})
	return liked, err
}

func (r *FileLikeRepository) ListLikesByPosts(_ context.Context, postIDs []string) ([]models.Like, error) {
	ids := idSet(postIDs)
	return r.likes.Filter(func(l models.Like) bool { return ids[l.PostID] })
}

func (r *FileLikeRepository) CountLikes(_ context.Context) (int64, error) {
	likes, err := r.likes.All()
	return int64(len(likes)), err
}

func (r *FileLikeRepository) DeleteLikesByPosts(_ context.Context, postIDs []string) error {
	ids := idSet(postIDs)
	_, err := r.likes.Remove(func(l models.Like) bool { return ids[l.PostID] })
	return err
}

func (r *FileLikeRepository) DeleteLikesByUser(_ context.Context, userID string) error {
	_, err := r.likes.Remove(func(l models.Like) bool { return l.UserID == userID })
	return err
}
