package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionService_LastWriteWins(t *testing.T) {
	repos := newTestRepos(t)
	author := createUser(t, repos, "a@example.com")
	fan := createUser(t, repos, "b@example.com")
	svc := NewReactionService(repos, nil)
	ctx := context.Background()
	post := createPost(t, repos, author.ID, "hello", time.Now())

	for _, rt := range []models.ReactionType{models.ReactionLike, models.ReactionFunny, models.ReactionSupport} {
		_, err := svc.Set(ctx, fan.ID, post.ID, rt)
		require.NoError(t, err)
	}

	rows, err := repos.Reactions.ListReactionsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ReactionSupport, rows[0].Type)

	counts, mine, err := svc.Summary(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Support)
	assert.Equal(t, 1, counts.Total)
	require.NotNil(t, mine)
	assert.Equal(t, models.ReactionSupport, *mine)

	counts, err = svc.Clear(ctx, fan.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Total)
	assert.Nil(t, counts.Dominant)

	_, err = svc.Clear(ctx, fan.ID, post.ID)
	require.NoError(t, err)
}

func TestReactionService_Rejects(t *testing.T) {
	repos := newTestRepos(t)
	author := createUser(t, repos, "a@example.com")
	svc := NewReactionService(repos, nil)
	post := createPost(t, repos, author.ID, "hello", time.Now())

	_, err := svc.Set(context.Background(), author.ID, post.ID, "angry")
	assertKind(t, err, models.KindValidation)

	_, err = svc.Set(context.Background(), author.ID, "missing", models.ReactionLike)
	assertKind(t, err, models.KindNotFound)
}

func TestReactionService_DominantTieResolvesToLike(t *testing.T) {
	repos := newTestRepos(t)
	author := createUser(t, repos, "a@example.com")
	notifications := NewNotificationService(repos.Notifications)
	svc := NewReactionService(repos, notifications)
	ctx := context.Background()
	post := createPost(t, repos, author.ID, "hello", time.Now())

	for i := 0; i < 3; i++ {
		_, err := svc.Set(ctx, "funny-"+string(rune('a'+i)), post.ID, models.ReactionFunny)
		require.NoError(t, err)
		_, err = svc.Set(ctx, "like-"+string(rune('a'+i)), post.ID, models.ReactionLike)
		require.NoError(t, err)
	}

	counts, _, err := svc.Summary(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Like)
	assert.Equal(t, 3, counts.Funny)
	require.NotNil(t, counts.Dominant)
	assert.Equal(t, models.ReactionLike, *counts.Dominant)

	inbox, err := notifications.List(ctx, author.ID)
	require.NoError(t, err)
	assert.Len(t, inbox, 6)
	assert.Equal(t, models.NotificationReaction, inbox[0].Type)
}

func TestReactionService_MyReactions(t *testing.T) {
	repos := newTestRepos(t)
	author := createUser(t, repos, "a@example.com")
	svc := NewReactionService(repos, nil)
	ctx := context.Background()
	p1 := createPost(t, repos, author.ID, "one", time.Now())
	p2 := createPost(t, repos, author.ID, "two", time.Now())

	_, err := svc.Set(ctx, "fan", p1.ID, models.ReactionWow)
	require.NoError(t, err)
	_, err = svc.Set(ctx, "fan", p2.ID, models.ReactionLike)
	require.NoError(t, err)

	mine, err := svc.MyReactions(ctx, "fan")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
