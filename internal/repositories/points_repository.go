package repositories

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointsRepository stores one point accumulator per user.
type PointsRepository interface {
	GetPoints(ctx context.Context, userID string) (*models.UserPoints, error)
	// ModifyPoints loads the user's record, creating an empty one if absent, applies fn and
	// saves the result as one atomic step. Nothing is saved when fn fails.
	ModifyPoints(ctx context.Context, userID string, fn func(*models.UserPoints) error) (*models.UserPoints, error)
	ListPoints(ctx context.Context) ([]models.UserPoints, error)
	DeletePoints(ctx context.Context, userID string) error
}

type PostgresPointsRepository struct {
	db *gorm.DB
}

func NewPostgresPointsRepository(db *gorm.DB) *PostgresPointsRepository {
	return &PostgresPointsRepository{db: db}
}

func (r *PostgresPointsRepository) GetPoints(ctx context.Context, userID string) (*models.UserPoints, error) {
	var p models.UserPoints
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, gormError(err)
	}
	return &p, nil
}

func (r *PostgresPointsRepository) ModifyPoints(ctx context.Context, userID string, fn func(*models.UserPoints) error) (*models.UserPoints, error) {
	var p models.UserPoints
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		isNew := false
		if err := tx.Where("user_id = ?", userID).First(&p).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			p = models.UserPoints{ID: uuid.NewString(), UserID: userID}
			isNew = true
		}
		if err := fn(&p); err != nil {
			return err
		}
		if isNew {
			return gormError(tx.Create(&p).Error)
		}
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPointsRepository) ListPoints(ctx context.Context) ([]models.UserPoints, error) {
	var all []models.UserPoints
	err := r.db.WithContext(ctx).Order("points desc").Find(&all).Error
	return all, err
}

func (r *PostgresPointsRepository) DeletePoints(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserPoints{}).Error
}

type FilePointsRepository struct {
	points *recordstore.Collection[models.UserPoints]
	now    func() time.Time
}

func NewFilePointsRepository(store *recordstore.Store) *FilePointsRepository {
	return &FilePointsRepository{points: recordstore.NewCollection[models.UserPoints](store, pointsCollection), now: time.Now}
}

func (r *FilePointsRepository) GetPoints(_ context.Context, userID string) (*models.UserPoints, error) {
	p, ok, err := r.points.Find(func(p models.UserPoints) bool { return p.UserID == userID })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *FilePointsRepository) ModifyPoints(_ context.Context, userID string, fn func(*models.UserPoints) error) (*models.UserPoints, error) {
	var saved models.UserPoints
	err := r.points.Update(func(all []models.UserPoints) ([]models.UserPoints, error) {
		i := slices.IndexFunc(all, func(p models.UserPoints) bool { return p.UserID == userID })
		if i < 0 {
			now := r.now()
			all = append(all, models.UserPoints{ID: uuid.NewString(), UserID: userID, CreatedAt: now})
			i = len(all) - 1
		}
		p := all[i]
		if err := fn(&p); err != nil {
			return nil, err
		}
		p.UpdatedAt = r.now()
		all[i] = p
		saved = p
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *FilePointsRepository) ListPoints(_ context.Context) ([]models.UserPoints, error) {
	return r.points.All()
}

func (r *FilePointsRepository) DeletePoints(_ context.Context, userID string) error {
	_, err := r.points.Remove(func(p models.UserPoints) bool { return p.UserID == userID })
	return err
}
