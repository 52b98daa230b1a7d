package repositories

import (
	"context"
	"slices"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetNotificationByID(ctx context.Context, id string) (*models.Notification, error)
	// ListNotifications returns the recipient's newest notifications, at most limit of them.
	ListNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id string) error
	DeleteNotificationsByUser(ctx context.Context, userID string) error
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
}

type PostgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *PostgresNotificationRepository) GetNotificationByID(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, gormError(err)
	}
	return &notification, nil
}

func (r *PostgresNotificationRepository) ListNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *PostgresNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

func (r *PostgresNotificationRepository) DeleteNotification(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresNotificationRepository) DeleteNotificationsByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}

func (r *PostgresNotificationRepository) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

type FileNotificationRepository struct {
	notifications *recordstore.Collection[models.Notification]
}

func NewFileNotificationRepository(store *recordstore.Store) *FileNotificationRepository {
	return &FileNotificationRepository{notifications: recordstore.NewCollection[models.Notification](store, notificationsCollection)}
}

func (r *FileNotificationRepository) CreateNotification(_ context.Context, notification *models.Notification) error {
	return r.notifications.Update(func(notifications []models.Notification) ([]models.Notification, error) {
		return append(notifications, *notification), nil
	})
}

func (r *FileNotificationRepository) GetNotificationByID(_ context.Context, id string) (*models.Notification, error) {
	n, ok, err := r.notifications.Find(func(n models.Notification) bool { return n.ID == id })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &n, nil
}

func (r *FileNotificationRepository) ListNotifications(_ context.Context, userID string, limit int) ([]models.Notification, error) {
	notifications, err := r.notifications.Filter(func(n models.Notification) bool { return n.UserID == userID })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(notifications, func(a, b models.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

func (r *FileNotificationRepository) MarkAsRead(_ context.Context, id string) error {
	return r.notifications.Update(func(notifications []models.Notification) ([]models.Notification, error) {
		i := slices.IndexFunc(notifications, func(n models.Notification) bool { return n.ID == id })
		if i < 0 {
			return nil, ErrNotFound
		}
		notifications[i].Read = true
		return notifications, nil
	})
}

func (r *FileNotificationRepository) MarkAllAsRead(_ context.Context, userID string) error {
	return r.notifications.Update(func(notifications []models.Notification) ([]models.Notification, error) {
		for i := range notifications {
			if notifications[i].UserID == userID {
				notifications[i].Read = true
			}
		}
		return notifications, nil
	})
}

func (r *FileNotificationRepository) DeleteNotification(_ context.Context, id string) error {
	removed, err := r.notifications.Remove(func(n models.Notification) bool { return n.ID == id })
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FileNotificationRepository) DeleteNotificationsByUser(_ context.Context, userID string) error {
	_, err := r.notifications.Remove(func(n models.Notification) bool { return n.UserID == userID })
	return err
}

func (r *FileNotificationRepository) GetUnreadCount(_ context.Context, userID string) (int64, error) {
	unread, err := r.notifications.Filter(func(n models.Notification) bool { return n.UserID == userID && !n.Read })
	return int64(len(unread)), err
}
