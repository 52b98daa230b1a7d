package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedService_GlobalAndByUser(t *testing.T) {
	repos := newTestRepos(t)
	a := createUser(t, repos, "a@example.com")
	b := createUser(t, repos, "b@example.com")
	createProfile(t, repos, a.ID, "Asha", "r1")
	svc := NewFeedService(repos)
	posts := NewPostService(repos, nil, nil)
	ctx := context.Background()
	now := time.Now()

	older := createPost(t, repos, a.ID, "older", now.Add(-time.Hour))
	newer := createPost(t, repos, b.ID, "newer", now)
	_, err := posts.ToggleLike(ctx, b.ID, older.ID)
	require.NoError(t, err)
	_, err = posts.AddComment(ctx, b.ID, older.ID, "nice")
	require.NoError(t, err)

	feed, err := svc.Global(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, newer.ID, feed[0].ID)
	assert.Equal(t, "Unknown", feed[0].UserName)
	assert.Equal(t, "Asha", feed[1].UserName)
	assert.Equal(t, []string{b.ID}, feed[1].Likes)
	require.Len(t, feed[1].Comments, 1)
	assert.Equal(t, "Unknown", feed[1].Comments[0].UserName)

	mine, err := svc.ByUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, older.ID, mine[0].ID)
}

func TestFeedService_Trending(t *testing.T) {
	repos := newTestRepos(t)
	a := createUser(t, repos, "a@example.com")
	svc := NewFeedService(repos)
	reactions := NewReactionService(repos, nil)
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	old := createPost(t, repos, a.ID, "old", now.Add(-2*time.Hour))
	fresh := createPost(t, repos, a.ID, "fresh", now.Add(-30*time.Minute))
	createPost(t, repos, a.ID, "quiet", now)
	for i := 0; i < 10; i++ {
		user := "fan-" + string(rune('a'+i))
		_, err := reactions.Set(ctx, user, old.ID, models.ReactionLike)
		require.NoError(t, err)
		_, err = reactions.Set(ctx, user, fresh.ID, models.ReactionWow)
		require.NoError(t, err)
	}

	trending, err := svc.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, trending, 3)
	assert.Equal(t, fresh.ID, trending[0].ID)
	assert.Equal(t, 10.0, trending[0].TrendingScore)
	assert.Equal(t, old.ID, trending[1].ID)
	assert.Equal(t, 5.0, trending[1].TrendingScore)
	assert.Equal(t, 10, trending[1].ReactionCount)
	assert.Zero(t, trending[2].TrendingScore)
}

func TestFeedService_PopularUsers(t *testing.T) {
	repos := newTestRepos(t)
	a := createUser(t, repos, "a@example.com")
	b := createUser(t, repos, "b@example.com")
	c := createUser(t, repos, "c@example.com")
	follows := NewFollowService(repos, nil, nil)
	svc := NewFeedService(repos)
	ctx := context.Background()

	createPost(t, repos, a.ID, "1", time.Now())
	createPost(t, repos, a.ID, "2", time.Now())
	createPost(t, repos, a.ID, "3", time.Now())
	_, err := follows.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = follows.Follow(ctx, c.ID, b.ID)
	require.NoError(t, err)

	popular, err := svc.PopularUsers(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, b.ID, popular[0].UserID)
	assert.Equal(t, 4, popular[0].PopularityScore)
	assert.Equal(t, a.ID, popular[1].UserID)
	assert.Equal(t, 3, popular[1].PostsCount)
}

func TestFeedService_Hashtags(t *testing.T) {
	repos := newTestRepos(t)
	a := createUser(t, repos, "a@example.com")
	svc := NewFeedService(repos)
	ctx := context.Background()
	now := time.Now()

	first := createPost(t, repos, a.ID, "#Exams are near #study", now.Add(-time.Hour))
	second := createPost(t, repos, a.ID, "more #exams", now)
	createPost(t, repos, a.ID, "#examsweek starts", now)

	tags, err := svc.TrendingHashtags(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tags)
	assert.Equal(t, models.HashtagCount{Tag: "exams", Count: 2}, tags[0])

	tagged, err := svc.Hashtag(ctx, "exams")
	require.NoError(t, err)
	require.Len(t, tagged, 2)
	assert.Equal(t, second.ID, tagged[0].ID)
	assert.Equal(t, first.ID, tagged[1].ID)

	_, err = svc.Hashtag(ctx, " ")
	assertKind(t, err, models.KindValidation)
}

func TestFeedService_Recommended(t *testing.T) {
	repos := newTestRepos(t)
	me := createUser(t, repos, "me@example.com")
	followed := createUser(t, repos, "f@example.com")
	createProfile(t, repos, me.ID, "Me", "r0")
	createProfile(t, repos, followed.ID, "Followed", "r1")
	for i := 0; i < 7; i++ {
		u := createUser(t, repos, "student"+string(rune('a'+i))+"@example.com")
		createProfile(t, repos, u.ID, "Student", "s"+string(rune('a'+i)))
	}
	_, err := NewFollowService(repos, nil, nil).Follow(context.Background(), me.ID, followed.ID)
	require.NoError(t, err)

	rec, err := NewFeedService(repos).Recommended(context.Background(), me.ID)
	require.NoError(t, err)
	require.Len(t, rec, 5)
	for _, r := range rec {
		assert.NotEqual(t, me.ID, r.UserID)
		assert.NotEqual(t, followed.ID, r.UserID)
	}
}
