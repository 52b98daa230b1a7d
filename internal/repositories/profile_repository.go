package repositories

import (
	"context"
	"slices"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"gorm.io/gorm"
)

// ProfileRepository stores one profile per user.
type ProfileRepository interface {
	GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// UpsertProfile inserts the profile or replaces the one already stored for its user,
	// keeping the stored id and creation time.
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	DeleteProfileByUserID(ctx context.Context, userID string) error
}

type PostgresProfileRepository struct {
	db *gorm.DB
}

func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, gormError(err)
	}
	return &profile, nil
}

func (r *PostgresProfileRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Profile
		err := tx.Where("user_id = ?", profile.UserID).First(&existing).Error
		switch {
		case err == nil:
			profile.ID = existing.ID
			profile.CreatedAt = existing.CreatedAt
			return tx.Save(profile).Error
		case gormError(err) == ErrNotFound:
			return gormError(tx.Create(profile).Error)
		default:
			return err
		}
	})
}

func (r *PostgresProfileRepository) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *PostgresProfileRepository) DeleteProfileByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Profile{}).Error
}

type FileProfileRepository struct {
	profiles *recordstore.Collection[models.Profile]
}

func NewFileProfileRepository(store *recordstore.Store) *FileProfileRepository {
	return &FileProfileRepository{profiles: recordstore.NewCollection[models.Profile](store, profilesCollection)}
}

func (r *FileProfileRepository) GetProfileByUserID(_ context.Context, userID string) (*models.Profile, error) {
	profile, ok, err := r.profiles.Find(func(p models.Profile) bool { return p.UserID == userID })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}

func (r *FileProfileRepository) UpsertProfile(_ context.Context, profile *models.Profile) error {
	return r.profiles.Update(func(profiles []models.Profile) ([]models.Profile, error) {
		i := slices.IndexFunc(profiles, func(p models.Profile) bool { return p.UserID == profile.UserID })
		if i < 0 {
			return append(profiles, *profile), nil
		}
		profile.ID = profiles[i].ID
		profile.CreatedAt = profiles[i].CreatedAt
		profiles[i] = *profile
		return profiles, nil
	})
}

func (r *FileProfileRepository) ListProfiles(_ context.Context) ([]models.Profile, error) {
	return r.profiles.All()
}

func (r *FileProfileRepository) DeleteProfileByUserID(_ context.Context, userID string) error {
	_, err := r.profiles.Remove(func(p models.Profile) bool { return p.UserID == userID })
	return err
}
