package services

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/metrics"
	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
	"github.com/google/uuid"
)

type FollowService struct {
	follows  repositories.FollowRepository
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
	notifier Notifier
	awarder  Awarder
	now      func() time.Time
}

func NewFollowService(repos *repositories.Set, notifier Notifier, awarder Awarder) *FollowService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if awarder == nil {
		awarder = nopAwarder{}
	}
	return &FollowService{
		follows:  repos.Follows,
		users:    repos.Users,
		profiles: repos.Profiles,
		notifier: notifier,
		awarder:  awarder,
		now:      time.Now,
	}
}

// Follow creates the edge follower -> target. A second follow of the same user is a conflict.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID string) (*models.Follow, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("Cannot follow yourself")
	}
	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		return nil, repoError(err, "User")
	}

	follow := &models.Follow{
		ID:          uuid.NewString(),
		FollowerID:  followerID,
		FollowingID: targetID,
		CreatedAt:   s.now(),
	}
	if err := s.follows.CreateFollow(ctx, follow); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, models.NewConflictError("Already following this user")
		}
		return nil, models.NewInternalError(err)
	}
	metrics.Event("follow")

	s.notifier.Notify(ctx, models.Notification{
		UserID:     targetID,
		Type:       models.NotificationFollow,
		FromUserID: followerID,
		Message:    "started following you",
	})
	s.awarder.AwardFor(ctx, targetID, ActionNewFollower)
	return follow, nil
}

// Unfollow removes the edge if present.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID string) error {
	if err := s.follows.DeleteFollow(ctx, followerID, targetID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *FollowService) Status(ctx context.Context, userID, targetID string) (*models.FollowStatus, error) {
	following, err := s.follows.IsFollowing(ctx, userID, targetID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	followsYou, err := s.follows.IsFollowing(ctx, targetID, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.FollowStatus{IsFollowing: following, FollowsYou: followsYou}, nil
}

func (s *FollowService) Counts(ctx context.Context, userID string) (*models.FollowCounts, error) {
	followers, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	following, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.FollowCounts{FollowersCount: len(followers), FollowingCount: len(following)}, nil
}

// Followers lists who follows userID, newest first.
func (s *FollowService) Followers(ctx context.Context, userID string) ([]models.Connection, error) {
	edges, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.connections(ctx, edges, func(f models.Follow) string { return f.FollowerID })
}

// Following lists who userID follows, newest first.
func (s *FollowService) Following(ctx context.Context, userID string) ([]models.Connection, error) {
	edges, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.connections(ctx, edges, func(f models.Follow) string { return f.FollowingID })
}

func (s *FollowService) connections(ctx context.Context, edges []models.Follow, other func(models.Follow) string) ([]models.Connection, error) {
	dir, err := loadDirectory(ctx, s.profiles)
	if err != nil {
		return nil, err
	}
	out := make([]models.Connection, 0, len(edges))
	for _, e := range edges {
		id := other(e)
		out = append(out, models.Connection{
			ID:           id,
			Name:         dir.name(id),
			ProfileImage: dir.image(id),
			Stream:       dir[id].Stream,
			FollowedAt:   e.CreatedAt,
		})
	}
	return out, nil
}
