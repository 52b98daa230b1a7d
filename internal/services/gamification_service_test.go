package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/anonto42/sach-wave/backend/internal/cache"
	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGamification_AwardLevelsUpOnce(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewGamificationService(repos.Points, repos.Profiles, nil)
	ctx := context.Background()

	first, err := svc.Award(ctx, "u1", 60, "x")
	require.NoError(t, err)
	assert.Equal(t, 60, first.Points)
	assert.Equal(t, "Newbie", first.Level)
	assert.False(t, first.LeveledUp)

	second, err := svc.Award(ctx, "u1", 60, "y")
	require.NoError(t, err)
	assert.Equal(t, 120, second.Points)
	assert.Equal(t, "Active", second.Level)
	assert.True(t, second.LeveledUp)

	for i := 0; i < 5; i++ {
		res, err := svc.Award(ctx, "u1", 10, "more")
		require.NoError(t, err)
		assert.False(t, res.LeveledUp)
	}

	p, err := repos.Points.GetPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"newbie", "active"}, p.Badges)
	assert.Len(t, p.History, 7)
}

func TestGamification_AwardRejectsNonPositive(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewGamificationService(repos.Points, repos.Profiles, nil)

	for _, pts := range []int{0, -5} {
		_, err := svc.Award(context.Background(), "u1", pts, "x")
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.KindValidation, appErr.Kind)
	}
}

func TestGamification_DailyLoginOncePerDay(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewGamificationService(repos.Points, repos.Profiles, nil)
	ctx := context.Background()
	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	svc.now = fixedClock(day)
	svc.AwardFor(ctx, "u1", ActionDailyLogin)
	svc.now = fixedClock(day.Add(10 * time.Hour))
	svc.AwardFor(ctx, "u1", ActionDailyLogin)

	p, err := repos.Points.GetPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Points)

	svc.now = fixedClock(day.Add(24 * time.Hour))
	svc.AwardFor(ctx, "u1", ActionDailyLogin)
	p, err = repos.Points.GetPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Points)
}

func TestGamification_SummaryCreatesRecord(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewGamificationService(repos.Points, repos.Profiles, nil)
	ctx := context.Background()

	s, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Points)
	assert.Equal(t, "Newbie", s.Level)
	assert.Equal(t, "🌱", s.Badge)
	require.NotNil(t, s.NextLevel)
	assert.Equal(t, "Active", *s.NextLevel)
	assert.Equal(t, 100, s.PointsToNextLevel)
	assert.Equal(t, []string{"newbie"}, s.Badges)

	_, err = repos.Points.GetPoints(ctx, "u1")
	assert.NoError(t, err)

	_, err = svc.Award(ctx, "u1", 1200, "bulk")
	require.NoError(t, err)
	s, err = svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Star Student", s.Level)
	assert.Nil(t, s.NextLevel)
	assert.Equal(t, 100, s.Progress)
	assert.Equal(t, 0, s.PointsToNextLevel)
}

func TestGamification_HistoryNewestFirst(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewGamificationService(repos.Points, repos.Profiles, nil)
	ctx := context.Background()

	empty, err := svc.History(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for i := 1; i <= 55; i++ {
		_, err := svc.Award(ctx, "u1", i, "step")
		require.NoError(t, err)
	}
	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 50)
	assert.Equal(t, 55, history[0].Points)
	assert.Equal(t, 6, history[49].Points)
}

func TestGamification_LeaderboardFromStore(t *testing.T) {
	repos := newTestRepos(t)
	createProfile(t, repos, "u2", "Bina", "r2")
	svc := NewGamificationService(repos.Points, repos.Profiles, nil)
	ctx := context.Background()

	_, _ = svc.Award(ctx, "u1", 30, "x")
	_, _ = svc.Award(ctx, "u2", 600, "x")

	board, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "u2", board[0].UserID)
	assert.Equal(t, "Bina", board[0].Name)
	assert.Equal(t, "Popular", board[0].Level)
	assert.Equal(t, "🌳", board[0].Badge)
	assert.Equal(t, "Unknown", board[1].Name)
}

func TestGamification_LeaderboardUsesRanker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ranker := cache.NewLeaderboard(client)

	repos := newTestRepos(t)
	svc := NewGamificationService(repos.Points, repos.Profiles, ranker)
	ctx := context.Background()

	_, err := svc.Award(ctx, "u1", 40, "x")
	require.NoError(t, err)
	_, err = svc.Award(ctx, "u2", 90, "x")
	require.NoError(t, err)

	top, err := ranker.Top(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []cache.Standing{{UserID: "u2", Points: 90}, {UserID: "u1", Points: 40}}, top)

	require.NoError(t, svc.Forget(ctx, "u2"))
	board, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "u1", board[0].UserID)

	require.NoError(t, ranker.Reset(ctx, nil))
	require.NoError(t, svc.SyncLeaderboard(ctx))
	top, err = ranker.Top(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []cache.Standing{{UserID: "u1", Points: 40}}, top)
}
