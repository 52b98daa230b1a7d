package repositories

import (
	"context"
	"slices"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations.
// At most one edge exists per (follower, following) pair.
type FollowRepository interface {
	// CreateFollow returns ErrDuplicate when the edge already exists.
	CreateFollow(ctx context.Context, follow *models.Follow) error
	// DeleteFollow removes the edge if present.
	DeleteFollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	// ListFollowers returns edges pointing at userID, newest first.
	ListFollowers(ctx context.Context, userID string) ([]models.Follow, error)
	// ListFollowing returns edges leaving userID, newest first.
	ListFollowing(ctx context.Context, userID string) ([]models.Follow, error)
	ListFollows(ctx context.Context) ([]models.Follow, error)
	DeleteFollowsByUser(ctx context.Context, userID string) error
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", follow.FollowerID, follow.FollowingID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return gormError(tx.Create(follow).Error)
	})
}

func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID string) error {
	return r.db.WithContext(ctx).Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) ListFollowers(ctx context.Context, userID string) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).Where("following_id = ?", userID).Order("created_at desc").Find(&follows).Error
	return follows, err
}

func (r *PostgresFollowRepository) ListFollowing(ctx context.Context, userID string) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).Where("follower_id = ?", userID).Order("created_at desc").Find(&follows).Error
	return follows, err
}

func (r *PostgresFollowRepository) ListFollows(ctx context.Context) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).Order("created_at asc").Find(&follows).Error
	return follows, err
}

func (r *PostgresFollowRepository) DeleteFollowsByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("follower_id = ? OR following_id = ?", userID, userID).Delete(&models.Follow{}).Error
}

type FileFollowRepository struct {
	follows *recordstore.Collection[models.Follow]
}

func NewFileFollowRepository(store *recordstore.Store) *FileFollowRepository {
	return &FileFollowRepository{follows: recordstore.NewCollection[models.Follow](store, followersCollection)}
}

func (r *FileFollowRepository) CreateFollow(_ context.Context, follow *models.Follow) error {
	return r.follows.Update(func(follows []models.Follow) ([]models.Follow, error) {
		for _, f := range follows {
			if f.FollowerID == follow.FollowerID && f.FollowingID == follow.FollowingID {
				return nil, ErrDuplicate
			}
		}
		return append(follows, *follow), nil
	})
}

func (r *FileFollowRepository) DeleteFollow(_ context.Context, followerID, followingID string) error {
	_, err := r.follows.Remove(func(f models.Follow) bool {
		return f.FollowerID == followerID && f.FollowingID == followingID
	})
	return err
}

func (r *FileFollowRepository) IsFollowing(_ context.Context, followerID, followingID string) (bool, error) {
	_, ok, err := r.follows.Find(func(f models.Follow) bool {
		return f.FollowerID == followerID && f.FollowingID == followingID
	})
	return ok, err
}

func (r *FileFollowRepository) ListFollowers(_ context.Context, userID string) ([]models.Follow, error) {
	return r.newestFirst(func(f models.Follow) bool { return f.FollowingID == userID })
}

func (r *FileFollowRepository) ListFollowing(_ context.Context, userID string) ([]models.Follow, error) {
	return r.newestFirst(func(f models.Follow) bool { return f.FollowerID == userID })
}

func (r *FileFollowRepository) newestFirst(fn func(models.Follow) bool) ([]models.Follow, error) {
	follows, err := r.follows.Filter(fn)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(follows, func(a, b models.Follow) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return follows, nil
}

func (r *FileFollowRepository) ListFollows(_ context.Context) ([]models.Follow, error) {
	return r.follows.All()
}

func (r *FileFollowRepository) DeleteFollowsByUser(_ context.Context, userID string) error {
	_, err := r.follows.Remove(func(f models.Follow) bool {
		return f.FollowerID == userID || f.FollowingID == userID
	})
	return err
}
