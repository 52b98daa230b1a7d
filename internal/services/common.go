package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
)

const unknownName = "Unknown"

// Notifier delivers inbox notifications. Delivery failures are logged, never returned.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// Awarder grants points for domain actions. Failures are logged, never returned.
type Awarder interface {
	AwardFor(ctx context.Context, userID string, action Action)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, models.Notification) {}

type nopAwarder struct{}

func (nopAwarder) AwardFor(context.Context, string, Action) {}

// repoError maps repository sentinels onto application errors.
func repoError(err error, resource string) error {
	var appErr *models.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.Is(err, repositories.ErrNotFound):
		return models.NewNotFoundError(resource)
	default:
		return models.NewInternalError(err)
	}
}

// directory resolves display names and avatars by user id.
type directory map[string]models.Profile

func loadDirectory(ctx context.Context, profiles repositories.ProfileRepository) (directory, error) {
	all, err := profiles.ListProfiles(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	dir := make(directory, len(all))
	for _, p := range all {
		dir[p.UserID] = p
	}
	return dir, nil
}

func (d directory) name(userID string) string {
	if p, ok := d[userID]; ok && p.Name != "" {
		return p.Name
	}
	return unknownName
}

func (d directory) image(userID string) string {
	return d[userID].ProfileImage
}

// enrichPosts joins posts with author, like ids and comments. Input order is kept.
func enrichPosts(ctx context.Context, repos *repositories.Set, posts []models.Post) ([]models.FeedPost, error) {
	dir, err := loadDirectory(ctx, repos.Profiles)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	likes, err := repos.Likes.ListLikesByPosts(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	comments, err := repos.Comments.ListCommentsByPosts(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	likesByPost := make(map[string][]string)
	for _, l := range likes {
		likesByPost[l.PostID] = append(likesByPost[l.PostID], l.UserID)
	}
	commentsByPost := make(map[string][]models.CommentView)
	for _, c := range comments {
		commentsByPost[c.PostID] = append(commentsByPost[c.PostID], models.CommentView{Comment: c, UserName: dir.name(c.UserID)})
	}

	out := make([]models.FeedPost, 0, len(posts))
	for _, p := range posts {
		fp := models.FeedPost{
			Post:      p,
			UserName:  dir.name(p.UserID),
			UserImage: dir.image(p.UserID),
			Likes:     likesByPost[p.ID],
			Comments:  commentsByPost[p.ID],
		}
		if fp.Likes == nil {
			fp.Likes = []string{}
		}
		if fp.Comments == nil {
			fp.Comments = []models.CommentView{}
		}
		out = append(out, fp)
	}
	return out, nil
}

// deletePosts removes posts together with their likes, comments and reactions.
func deletePosts(ctx context.Context, repos *repositories.Set, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := repos.Likes.DeleteLikesByPosts(ctx, ids); err != nil {
		return err
	}
	if err := repos.Comments.DeleteCommentsByPosts(ctx, ids); err != nil {
		return err
	}
	return repos.Reactions.DeleteReactionsByPosts(ctx, ids)
}

func sortByTimeDesc[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return at(items[i]).After(at(items[j])) })
}

func logSideEffect(ctx context.Context, what string, err error, attrs ...any) {
	if err == nil {
		return
	}
	slog.ErrorContext(ctx, what+" failed", append(attrs, slog.Any("error", err))...)
}
