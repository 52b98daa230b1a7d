package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryService_Visibility(t *testing.T) {
	repos := newTestRepos(t)
	author := createUser(t, repos, "a@example.com")
	awards := &recordingAwarder{}
	svc := NewStoryService(repos, awards)
	ctx := context.Background()
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	svc.now = fixedClock(created)
	story, err := svc.Create(ctx, author.ID, models.CreateStoryRequest{Type: models.StoryText, Content: "exam day", Background: 2})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", story.UserName)
	assert.Equal(t, []string{author.ID + ":CREATE_STORY"}, awards.awards)

	svc.now = fixedClock(created.Add(23*time.Hour + 59*time.Minute))
	active, err := svc.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, story.ID, active[0].ID)

	svc.now = fixedClock(created.Add(24*time.Hour + time.Minute))
	active, err = svc.Active(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestStoryService_CreateValidation(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewStoryService(repos, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", models.CreateStoryRequest{})
	assertKind(t, err, models.KindValidation)
	_, err = svc.Create(ctx, "u1", models.CreateStoryRequest{Type: models.StoryText, Image: "img"})
	assertKind(t, err, models.KindValidation)

	story, err := svc.Create(ctx, "u1", models.CreateStoryRequest{Image: "data:image/png;base64,AAAA"})
	require.NoError(t, err)
	assert.Equal(t, models.StoryImage, story.Type)
}

func TestStoryService_ViewsAndViewers(t *testing.T) {
	repos := newTestRepos(t)
	owner := createUser(t, repos, "owner@example.com")
	author := createUser(t, repos, "a@example.com")
	viewer := createUser(t, repos, "v@example.com")
	createProfile(t, repos, viewer.ID, "Vik", "r9")
	svc := NewStoryService(repos, nil)
	ctx := context.Background()

	story, err := svc.Create(ctx, author.ID, models.CreateStoryRequest{Image: "img"})
	require.NoError(t, err)

	require.NoError(t, svc.View(ctx, viewer.ID, story.ID))
	require.NoError(t, svc.View(ctx, viewer.ID, story.ID))
	assertKind(t, svc.View(ctx, viewer.ID, "missing"), models.KindNotFound)

	viewers, err := svc.Viewers(ctx, author, story.ID)
	require.NoError(t, err)
	require.Len(t, viewers, 1)
	assert.Equal(t, "Vik", viewers[0].UserName)

	_, err = svc.Viewers(ctx, viewer, story.ID)
	assertKind(t, err, models.KindAuthorization)

	_, err = svc.Viewers(ctx, owner, story.ID)
	require.NoError(t, err)

	assertKind(t, svc.Delete(ctx, viewer, story.ID), models.KindAuthorization)
	require.NoError(t, svc.Delete(ctx, author, story.ID))
	n, err := repos.StoryViews.CountViews(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assertKind(t, svc.Delete(ctx, author, story.ID), models.KindNotFound)
}
