package services

import (
	"context"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/metrics"
	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
	"github.com/google/uuid"
)

// inboxLimit caps how many notifications a listing returns.
const inboxLimit = 50

type NotificationService struct {
	repo repositories.NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

// Notify appends n to the recipient's inbox. Notifications to oneself are dropped.
func (s *NotificationService) Notify(ctx context.Context, n models.Notification) {
	if n.UserID == "" || n.UserID == n.FromUserID {
		return
	}
	n.ID = uuid.NewString()
	n.Read = false
	n.CreatedAt = s.now()
	if err := s.repo.CreateNotification(ctx, &n); err != nil {
		logSideEffect(ctx, "notify", err, "user_id", n.UserID, "type", n.Type)
		return
	}
	metrics.Event("notification_" + string(n.Type))
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	list, err := s.repo.ListNotifications(ctx, userID, inboxLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return list, nil
}

// owned loads the notification and checks it is addressed to userID.
func (s *NotificationService) owned(ctx context.Context, id, userID string) error {
	n, err := s.repo.GetNotificationByID(ctx, id)
	if err != nil {
		return repoError(err, "Notification")
	}
	if n.UserID != userID {
		return models.NewAuthorizationError("Not authorized")
	}
	return nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return repoError(s.repo.MarkAsRead(ctx, id), "Notification")
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return repoError(s.repo.MarkAllAsRead(ctx, userID), "Notification")
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.owned(ctx, id, userID); err != nil {
		return err
	}
	return repoError(s.repo.DeleteNotification(ctx, id), "Notification")
}

func (s *NotificationService) ClearAll(ctx context.Context, userID string) error {
	return repoError(s.repo.DeleteNotificationsByUser(ctx, userID), "Notification")
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
