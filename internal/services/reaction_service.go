package services

import (
	"context"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/metrics"
	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
)

type ReactionService struct {
	reactions repositories.ReactionRepository
	posts     repositories.PostRepository
	notifier  Notifier
	now       func() time.Time
}

func NewReactionService(repos *repositories.Set, notifier Notifier) *ReactionService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &ReactionService{reactions: repos.Reactions, posts: repos.Posts, notifier: notifier, now: time.Now}
}

// Set records the user's reaction on a post, replacing any earlier one.
func (s *ReactionService) Set(ctx context.Context, userID, postID string, t models.ReactionType) (*models.ReactionCounts, error) {
	if !t.Valid() {
		return nil, models.NewValidationError("Invalid reaction type")
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, repoError(err, "Post")
	}
	if _, err := s.reactions.UpsertReaction(ctx, postID, userID, t, s.now()); err != nil {
		return nil, models.NewInternalError(err)
	}
	metrics.Event("reaction")

	if post.UserID != userID {
		s.notifier.Notify(ctx, models.Notification{
			UserID:       post.UserID,
			Type:         models.NotificationReaction,
			FromUserID:   userID,
			PostID:       postID,
			ReactionType: t,
			Message:      "reacted " + string(t) + " to your post",
		})
	}
	return s.counts(ctx, postID)
}

// Clear removes the user's reaction if there is one.
func (s *ReactionService) Clear(ctx context.Context, userID, postID string) (*models.ReactionCounts, error) {
	if err := s.reactions.DeleteReaction(ctx, postID, userID); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.counts(ctx, postID)
}

// Summary returns the counts on a post and the caller's own reaction, if any.
func (s *ReactionService) Summary(ctx context.Context, userID, postID string) (*models.ReactionCounts, *models.ReactionType, error) {
	list, err := s.reactions.ListReactionsByPost(ctx, postID)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}
	counts := models.CountReactions(list)
	var mine *models.ReactionType
	for _, r := range list {
		if r.UserID == userID {
			t := r.Type
			mine = &t
			break
		}
	}
	return &counts, mine, nil
}

func (s *ReactionService) MyReactions(ctx context.Context, userID string) ([]models.Reaction, error) {
	list, err := s.reactions.ListReactionsByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return list, nil
}

func (s *ReactionService) counts(ctx context.Context, postID string) (*models.ReactionCounts, error) {
	list, err := s.reactions.ListReactionsByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	counts := models.CountReactions(list)
	return &counts, nil
}
