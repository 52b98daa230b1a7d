package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "sachwave:leaderboard"

// Standing is one user's total in the leaderboard.
type Standing struct {
	UserID string
	Points int
}

// Leaderboard mirrors every user's point total in a Redis sorted set.
type Leaderboard struct {
	client *redis.Client
	key    string
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client, key: leaderboardKey}
}

// Record stores the user's current total.
func (l *Leaderboard) Record(ctx context.Context, userID string, points int) error {
	return l.client.ZAdd(ctx, l.key, redis.Z{Score: float64(points), Member: userID}).Err()
}

// Top returns the n highest totals, highest first.
func (l *Leaderboard) Top(ctx context.Context, n int) ([]Standing, error) {
	zs, err := l.client.ZRevRangeWithScores(ctx, l.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	standings := make([]Standing, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected leaderboard member %v", z.Member)
		}
		standings = append(standings, Standing{UserID: member, Points: int(z.Score)})
	}
	return standings, nil
}

// Remove drops the user from the leaderboard.
func (l *Leaderboard) Remove(ctx context.Context, userID string) error {
	return l.client.ZRem(ctx, l.key, userID).Err()
}

// Reset replaces the whole leaderboard with standings.
func (l *Leaderboard) Reset(ctx context.Context, standings []Standing) error {
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, l.key)
		if len(standings) == 0 {
			return nil
		}
		members := make([]redis.Z, 0, len(standings))
		for _, s := range standings {
			members = append(members, redis.Z{Score: float64(s.Points), Member: s.UserID})
		}
		pipe.ZAdd(ctx, l.key, members...)
		return nil
	})
	return err
}
