package repositories

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileSet(t *testing.T) *Set {
	t.Helper()
	store, err := recordstore.Open(t.TempDir())
	require.NoError(t, err)
	return NewFileSet(store)
}

func TestFileUserRepository_OwnerAndDuplicates(t *testing.T) {
	set := newFileSet(t)
	ctx := context.Background()

	first := &models.User{ID: uuid.NewString(), Email: "a@example.com"}
	require.NoError(t, set.Users.CreateUser(ctx, first))
	assert.Equal(t, models.RoleOwner, first.Role)

	second := &models.User{ID: uuid.NewString(), Email: "b@example.com"}
	require.NoError(t, set.Users.CreateUser(ctx, second))
	assert.Equal(t, models.RoleUser, second.Role)

	dup := &models.User{ID: uuid.NewString(), Email: "A@Example.com"}
	assert.ErrorIs(t, set.Users.CreateUser(ctx, dup), ErrDuplicate)

	got, err := set.Users.GetUserByEmail(ctx, "B@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	assert.ErrorIs(t, set.Users.DeleteUser(ctx, "missing"), ErrNotFound)
	count, err := set.Users.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFileUserRepository_PersistsPasswordHash(t *testing.T) {
	dir := t.TempDir()
	store, err := recordstore.Open(dir)
	require.NoError(t, err)
	ctx := context.Background()

	user := &models.User{ID: uuid.NewString(), Email: "a@example.com", Password: "$2a$10$hash"}
	require.NoError(t, NewFileUserRepository(store).CreateUser(ctx, user))

	reopened, err := recordstore.Open(dir)
	require.NoError(t, err)
	users := NewFileUserRepository(reopened)

	got, err := users.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", got.Password)

	got.Suspended = true
	require.NoError(t, users.UpdateUser(ctx, got))
	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "$2a$10$hash", all[0].Password)
	assert.True(t, all[0].Suspended)

	raw, err := os.ReadFile(filepath.Join(dir, usersCollection+".json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"password"`)

	public, err := json.Marshal(all[0])
	require.NoError(t, err)
	assert.NotContains(t, string(public), "hash")
}

func TestFileReactionRepository_UpsertOverwrites(t *testing.T) {
	set := newFileSet(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	first, err := set.Reactions.UpsertReaction(ctx, "p1", "u1", models.ReactionLike, at)
	require.NoError(t, err)
	second, err := set.Reactions.UpsertReaction(ctx, "p1", "u1", models.ReactionSupport, at.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, at, second.CreatedAt)

	reactions, err := set.Reactions.ListReactionsByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, models.ReactionSupport, reactions[0].Type)

	require.NoError(t, set.Reactions.DeleteReaction(ctx, "p1", "u1"))
	reactions, err = set.Reactions.ListReactionsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, reactions)
}

func TestFileStoryRepository_ListSince(t *testing.T) {
	set := newFileSet(t)
	ctx := context.Background()
	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, at := range []time.Time{cutoff, cutoff.Add(time.Hour), cutoff.Add(2 * time.Hour)} {
		require.NoError(t, set.Stories.CreateStory(ctx, &models.Story{
			ID:        []string{"s0", "s1", "s2"}[i],
			UserID:    "u1",
			Type:      models.StoryImage,
			Image:     "img",
			CreatedAt: at,
		}))
	}

	stories, err := set.Stories.ListStoriesSince(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "s2", stories[0].ID)
	assert.Equal(t, "s1", stories[1].ID)

	ids, err := set.Stories.DeleteStoriesByUser(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"s0", "s1", "s2"}, ids)
}

func TestFilePostRepository_DeleteByUser(t *testing.T) {
	set := newFileSet(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, set.Posts.CreatePost(ctx, &models.Post{ID: "p1", UserID: "u1", Content: "one", CreatedAt: now}))
	require.NoError(t, set.Posts.CreatePost(ctx, &models.Post{ID: "p2", UserID: "u2", Content: "two", CreatedAt: now.Add(time.Second)}))
	require.NoError(t, set.Posts.CreatePost(ctx, &models.Post{ID: "p3", UserID: "u1", Content: "three", CreatedAt: now.Add(2 * time.Second)}))

	all, err := set.Posts.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "p3", all[0].ID)

	ids, err := set.Posts.DeletePostsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p3"}, ids)

	_, err = set.Posts.GetPostByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, set.Posts.DeletePost(ctx, "p1"), ErrNotFound)
}

func TestFilePointsRepository_ModifyPoints(t *testing.T) {
	set := newFileSet(t)
	ctx := context.Background()

	_, err := set.Points.GetPoints(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = set.Points.ModifyPoints(ctx, "u1", func(p *models.UserPoints) error {
		p.Points = 50
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	_, err = set.Points.GetPoints(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	saved, err := set.Points.ModifyPoints(ctx, "u1", func(p *models.UserPoints) error {
		p.Points += 10
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10, saved.Points)
	assert.NotEmpty(t, saved.ID)

	saved, err = set.Points.ModifyPoints(ctx, "u1", func(p *models.UserPoints) error {
		p.Points += 5
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 15, saved.Points)

	all, err := set.Points.ListPoints(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFileStoryViewRepository_RecordViewOnce(t *testing.T) {
	set := newFileSet(t)
	ctx := context.Background()

	created, err := set.StoryViews.RecordView(ctx, &models.StoryView{ID: "v1", StoryID: "s1", UserID: "u1", ViewedAt: time.Now()})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = set.StoryViews.RecordView(ctx, &models.StoryView{ID: "v2", StoryID: "s1", UserID: "u1", ViewedAt: time.Now()})
	require.NoError(t, err)
	assert.False(t, created)

	count, err := set.StoryViews.CountViews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, set.StoryViews.DeleteViewsByUser(ctx, "u1"))
	views, err := set.StoryViews.ListViewsByStory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestFileNotificationRepository_ListLimitAndRead(t *testing.T) {
	set := newFileSet(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, set.Notifications.CreateNotification(ctx, &models.Notification{
			ID:        uuid.NewString(),
			UserID:    "u1",
			Type:      models.NotificationFollow,
			Message:   "started following you",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	latest, err := set.Notifications.ListNotifications(ctx, "u1", 3)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, base.Add(4*time.Minute), latest[0].CreatedAt)

	require.NoError(t, set.Notifications.MarkAsRead(ctx, latest[0].ID))
	unread, err := set.Notifications.GetUnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), unread)

	require.NoError(t, set.Notifications.MarkAllAsRead(ctx, "u1"))
	unread, err = set.Notifications.GetUnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, unread)

	assert.ErrorIs(t, set.Notifications.DeleteNotification(ctx, "missing"), ErrNotFound)
}
