package repositories

import (
	"context"
	"slices"
	"strings"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
// CreateUser gives the very first account the owner role and every later one the user role.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			// serialise first-signup detection
			if err := tx.Exec("LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
				return err
			}
		}
		var taken int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrDuplicate
		}
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		user.Role = models.RoleUser
		if count == 0 {
			user.Role = models.RoleOwner
		}
		return gormError(tx.Create(user).Error)
	})
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, gormError(err)
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, gormError(err)
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, gormError(err)
	}
	return &user, nil
}

func (r *PostgresUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return gormError(r.db.WithContext(ctx).Save(user).Error)
}

func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// FileUserRepository implements UserRepository on the JSON record store.
type FileUserRepository struct {
	users *recordstore.Collection[fileUser]
}

// fileUser is the on-disk shape of a user. Unlike models.User it persists the password hash.
type fileUser struct {
	models.User
	Password string `json:"password"`
}

func toFileUser(u *models.User) fileUser {
	return fileUser{User: *u, Password: u.Password}
}

func (f fileUser) model() *models.User {
	u := f.User
	u.Password = f.Password
	return &u
}

func NewFileUserRepository(store *recordstore.Store) *FileUserRepository {
	return &FileUserRepository{users: recordstore.NewCollection[fileUser](store, usersCollection)}
}

func (r *FileUserRepository) CreateUser(_ context.Context, user *models.User) error {
	return r.users.Update(func(users []fileUser) ([]fileUser, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, user.Email) {
				return nil, ErrDuplicate
			}
		}
		user.Role = models.RoleUser
		if len(users) == 0 {
			user.Role = models.RoleOwner
		}
		return append(users, toFileUser(user)), nil
	})
}

func (r *FileUserRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u fileUser) bool { return u.ID == id })
}

func (r *FileUserRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u fileUser) bool { return strings.EqualFold(u.Email, email) })
}

func (r *FileUserRepository) GetUserByFirebaseUID(_ context.Context, firebaseUID string) (*models.User, error) {
	return r.find(func(u fileUser) bool { return u.FirebaseUID != nil && *u.FirebaseUID == firebaseUID })
}

func (r *FileUserRepository) find(fn func(fileUser) bool) (*models.User, error) {
	user, ok, err := r.users.Find(fn)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return user.model(), nil
}

func (r *FileUserRepository) ListUsers(_ context.Context) ([]models.User, error) {
	stored, err := r.users.All()
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(stored))
	for _, u := range stored {
		users = append(users, *u.model())
	}
	return users, nil
}

func (r *FileUserRepository) UpdateUser(_ context.Context, user *models.User) error {
	return r.users.Update(func(users []fileUser) ([]fileUser, error) {
		i := slices.IndexFunc(users, func(u fileUser) bool { return u.ID == user.ID })
		if i < 0 {
			return nil, ErrNotFound
		}
		users[i] = toFileUser(user)
		return users, nil
	})
}

func (r *FileUserRepository) DeleteUser(_ context.Context, id string) error {
	removed, err := r.users.Remove(func(u fileUser) bool { return u.ID == id })
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FileUserRepository) CountUsers(_ context.Context) (int64, error) {
	users, err := r.users.All()
	return int64(len(users)), err
}
