package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLeaderboard(t *testing.T) *Leaderboard {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLeaderboard(client)
}

func TestLeaderboard_RecordAndTop(t *testing.T) {
	ctx := context.Background()
	lb := setupLeaderboard(t)

	require.NoError(t, lb.Record(ctx, "alice", 120))
	require.NoError(t, lb.Record(ctx, "bob", 300))
	require.NoError(t, lb.Record(ctx, "carol", 50))
	require.NoError(t, lb.Record(ctx, "alice", 500))

	top, err := lb.Top(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []Standing{{UserID: "alice", Points: 500}, {UserID: "bob", Points: 300}}, top)
}

func TestLeaderboard_RemoveAndReset(t *testing.T) {
	ctx := context.Background()
	lb := setupLeaderboard(t)

	require.NoError(t, lb.Record(ctx, "alice", 10))
	require.NoError(t, lb.Remove(ctx, "alice"))
	top, err := lb.Top(ctx, 20)
	require.NoError(t, err)
	assert.Empty(t, top)

	require.NoError(t, lb.Reset(ctx, []Standing{{UserID: "x", Points: 1}, {UserID: "y", Points: 2}}))
	top, err = lb.Top(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, []Standing{{UserID: "y", Points: 2}, {UserID: "x", Points: 1}}, top)
}

func TestInitRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	addr := mr.Addr()
	client, err := InitRedis(context.Background(), "redis://"+addr)
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = InitRedis(context.Background(), "redis://"+addr)
	assert.Error(t, err)
}
