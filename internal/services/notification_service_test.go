package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_SkipsSelf(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewNotificationService(repos.Notifications)
	ctx := context.Background()

	svc.Notify(ctx, models.Notification{UserID: "u1", FromUserID: "u1", Type: models.NotificationLike})
	n, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNotificationService_RecipientScoped(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewNotificationService(repos.Notifications)
	ctx := context.Background()

	svc.Notify(ctx, models.Notification{UserID: "u1", FromUserID: "u2", Type: models.NotificationFollow})
	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	id := list[0].ID
	assert.False(t, list[0].Read)

	assertKind(t, svc.MarkRead(ctx, "u2", id), models.KindAuthorization)
	assertKind(t, svc.Delete(ctx, "u2", id), models.KindAuthorization)
	assertKind(t, svc.MarkRead(ctx, "u1", "missing"), models.KindNotFound)

	require.NoError(t, svc.MarkRead(ctx, "u1", id))
	n, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, svc.Delete(ctx, "u1", id))
	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotificationService_BulkOperations(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewNotificationService(repos.Notifications)
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 55; i++ {
		svc.now = fixedClock(base.Add(time.Duration(i) * time.Second))
		svc.Notify(ctx, models.Notification{UserID: "u1", FromUserID: "u2", Type: models.NotificationLike})
	}
	svc.Notify(ctx, models.Notification{UserID: "u3", FromUserID: "u2", Type: models.NotificationLike})

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 50)
	assert.True(t, list[0].CreatedAt.After(list[49].CreatedAt))

	require.NoError(t, svc.MarkAllRead(ctx, "u1"))
	n, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, svc.ClearAll(ctx, "u1"))
	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	n, err = svc.UnreadCount(ctx, "u3")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
