package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_SendAndHistory(t *testing.T) {
	repos := newTestRepos(t)
	a := createUser(t, repos, "a@example.com")
	b := createUser(t, repos, "b@example.com")
	createProfile(t, repos, a.ID, "Asha", "r1")
	svc := NewMessageService(repos)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	svc.now = fixedClock(base)
	_, err := svc.Send(ctx, a.ID, b.ID, " hi there ")
	require.NoError(t, err)
	svc.now = fixedClock(base.Add(time.Minute))
	_, err = svc.Send(ctx, a.ID, b.ID, "are you coming?")
	require.NoError(t, err)

	unread, err := svc.UnreadCount(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	convs, err := svc.Conversations(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, a.ID, convs[0].UserID)
	assert.Equal(t, "Asha", convs[0].Name)
	assert.Equal(t, "are you coming?", convs[0].LastMessage)
	assert.Equal(t, 2, convs[0].UnreadCount)
	assert.False(t, convs[0].IsOnline)

	svc.now = fixedClock(base.Add(time.Hour))
	history, err := svc.History(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hi there", history[0].Content)
	assert.Equal(t, "Asha", history[0].SenderName)
	assert.True(t, history[0].Read)
	require.NotNil(t, history[0].ReadAt)

	unread, err = svc.UnreadCount(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// the sender's own view does not mark anything
	_, err = svc.Send(ctx, b.ID, a.ID, "yes")
	require.NoError(t, err)
	_, err = svc.History(ctx, b.ID, a.ID)
	require.NoError(t, err)
	unread, err = svc.UnreadCount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestMessageService_SendRejects(t *testing.T) {
	repos := newTestRepos(t)
	a := createUser(t, repos, "a@example.com")
	svc := NewMessageService(repos)
	ctx := context.Background()

	_, err := svc.Send(ctx, a.ID, "missing", "hello")
	assertKind(t, err, models.KindNotFound)
	_, err = svc.Send(ctx, a.ID, a.ID, "hello")
	assertKind(t, err, models.KindValidation)
	_, err = svc.Send(ctx, a.ID, "missing", "   ")
	assertKind(t, err, models.KindValidation)
}

func TestMessageService_MarkRead(t *testing.T) {
	repos := newTestRepos(t)
	a := createUser(t, repos, "a@example.com")
	b := createUser(t, repos, "b@example.com")
	svc := NewMessageService(repos)
	ctx := context.Background()

	msg, err := svc.Send(ctx, a.ID, b.ID, "hello")
	require.NoError(t, err)

	assertKind(t, svc.MarkRead(ctx, a.ID, msg.ID), models.KindAuthorization)
	assertKind(t, svc.MarkRead(ctx, b.ID, "missing"), models.KindNotFound)
	require.NoError(t, svc.MarkRead(ctx, b.ID, msg.ID))

	stored, err := repos.Messages.GetMessageByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.True(t, stored.Read)
}
