package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/metrics"
	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
)

const analyticsTopN = 10

// PointsForgetter drops a user's gamification state.
type PointsForgetter interface {
	Forget(ctx context.Context, userID string) error
}

type AdminService struct {
	repos  *repositories.Set
	points PointsForgetter
	now    func() time.Time
}

func NewAdminService(repos *repositories.Set, points PointsForgetter) *AdminService {
	return &AdminService{repos: repos, points: points, now: time.Now}
}

// Users lists every account with its profile name and post count.
func (s *AdminService) Users(ctx context.Context) ([]models.AdminUser, error) {
	users, err := s.repos.Users.ListUsers(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	posts, err := s.repos.Posts.ListPosts(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	dir, err := loadDirectory(ctx, s.repos.Profiles)
	if err != nil {
		return nil, err
	}
	postCounts := make(map[string]int)
	for _, p := range posts {
		postCounts[p.UserID]++
	}

	out := make([]models.AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, models.AdminUser{
			ID:           u.ID,
			Email:        u.Email,
			Role:         u.Role,
			Suspended:    u.Suspended,
			Banned:       u.Banned,
			CreatedAt:    u.CreatedAt,
			Name:         dir[u.ID].Name,
			ProfileImage: dir.image(u.ID),
			PostsCount:   postCounts[u.ID],
		})
	}
	return out, nil
}

// Posts lists every post, newest first, with engagement.
func (s *AdminService) Posts(ctx context.Context) ([]models.FeedPost, error) {
	posts, err := s.repos.Posts.ListPosts(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return enrichPosts(ctx, s.repos, posts)
}

// target loads the user an action is aimed at and rejects actions against oneself.
func (s *AdminService) target(ctx context.Context, actor *models.User, userID, selfMessage string) (*models.User, error) {
	user, err := s.repos.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User")
	}
	if selfMessage != "" && user.ID == actor.ID {
		return nil, models.NewValidationError(selfMessage)
	}
	return user, nil
}

// DeleteUser removes the account and everything that references it.
func (s *AdminService) DeleteUser(ctx context.Context, actor *models.User, userID string) error {
	user, err := s.target(ctx, actor, userID, "Cannot delete yourself")
	if err != nil {
		return err
	}
	if user.Role == models.RoleOwner {
		return models.NewValidationError("Cannot delete the owner")
	}
	if err := s.cascadeUser(ctx, userID); err != nil {
		return models.NewInternalError(err)
	}
	if err := s.repos.Users.DeleteUser(ctx, userID); err != nil {
		return repoError(err, "User")
	}
	slog.InfoContext(ctx, "user deleted", "user_id", userID, "by", actor.ID)
	metrics.Event("user_deleted")
	return nil
}

func (s *AdminService) cascadeUser(ctx context.Context, userID string) error {
	r := s.repos
	postIDs, err := r.Posts.DeletePostsByUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := deletePosts(ctx, r, postIDs); err != nil {
		return err
	}
	storyIDs, err := r.Stories.DeleteStoriesByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(storyIDs) > 0 {
		if err := r.StoryViews.DeleteViewsByStories(ctx, storyIDs); err != nil {
			return err
		}
	}

	steps := []func(context.Context, string) error{
		r.Profiles.DeleteProfileByUserID,
		r.Likes.DeleteLikesByUser,
		r.Comments.DeleteCommentsByUser,
		r.Reactions.DeleteReactionsByUser,
		r.StoryViews.DeleteViewsByUser,
		r.Follows.DeleteFollowsByUser,
		r.Notifications.DeleteNotificationsByUser,
		r.Messages.DeleteMessagesByUser,
		r.ChatSessions.DeleteSessionsByUser,
	}
	for _, step := range steps {
		if err := step(ctx, userID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
	}
	if s.points != nil {
		return s.points.Forget(ctx, userID)
	}
	return nil
}

// ToggleSuspend flips the suspended flag and returns the updated user.
func (s *AdminService) ToggleSuspend(ctx context.Context, actor *models.User, userID string) (*models.User, error) {
	user, err := s.target(ctx, actor, userID, "Cannot suspend yourself")
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleOwner {
		return nil, models.NewValidationError("Cannot suspend the owner")
	}
	user.Suspended = !user.Suspended
	if err := s.repos.Users.UpdateUser(ctx, user); err != nil {
		return nil, repoError(err, "User")
	}
	return user, nil
}

// DeletePost removes any post with the same cascade as an author delete.
func (s *AdminService) DeletePost(ctx context.Context, postID string) error {
	if err := s.repos.Posts.DeletePost(ctx, postID); err != nil {
		return repoError(err, "Post")
	}
	if err := deletePosts(ctx, s.repos, []string{postID}); err != nil {
		return models.NewInternalError(err)
	}
	metrics.Event("post_deleted")
	return nil
}

func (s *AdminService) Analytics(ctx context.Context) (*models.Analytics, error) {
	r := s.repos
	var a models.Analytics
	counters := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&a.TotalUsers, r.Users.CountUsers},
		{&a.TotalPosts, r.Posts.CountPosts},
		{&a.TotalStories, r.Stories.CountStories},
		{&a.TotalLikes, r.Likes.CountLikes},
		{&a.TotalComments, r.Comments.CountComments},
		{&a.TotalViews, r.StoryViews.CountViews},
	}
	for _, c := range counters {
		n, err := c.fn(ctx)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		*c.dst = n
	}

	posts, err := r.Posts.ListPosts(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	a.EngagementRate = EngagementRate(int(a.TotalLikes), int(a.TotalComments), int(a.TotalPosts))

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	likes, err := r.Likes.ListLikesByPosts(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	dir, err := loadDirectory(ctx, r.Profiles)
	if err != nil {
		return nil, err
	}

	likeCounts := make(map[string]int)
	for _, l := range likes {
		likeCounts[l.PostID]++
	}
	top := make([]models.TopPost, 0, len(posts))
	postCounts := make(map[string]int)
	var authors []string
	for _, p := range posts {
		top = append(top, models.TopPost{Post: p, UserName: dir.name(p.UserID), Likes: likeCounts[p.ID]})
		if postCounts[p.UserID] == 0 {
			authors = append(authors, p.UserID)
		}
		postCounts[p.UserID]++
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Likes > top[j].Likes })
	if len(top) > analyticsTopN {
		top = top[:analyticsTopN]
	}
	a.TopPosts = top

	active := make([]models.ActiveUser, 0, len(authors))
	for _, id := range authors {
		active = append(active, models.ActiveUser{UserID: id, Name: dir.name(id), Posts: postCounts[id]})
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Posts > active[j].Posts })
	if len(active) > analyticsTopN {
		active = active[:analyticsTopN]
	}
	a.MostActiveUsers = active
	return &a, nil
}

// GrantAdmin promotes a user to admin.
func (s *AdminService) GrantAdmin(ctx context.Context, actor *models.User, userID string) (*models.User, error) {
	user, err := s.target(ctx, actor, userID, "")
	if err != nil {
		return nil, err
	}
	switch user.Role {
	case models.RoleOwner:
		return nil, models.NewValidationError("Cannot change the owner's role")
	case models.RoleAdmin:
		return nil, models.NewConflictError("User is already an admin")
	}
	user.Role = models.RoleAdmin
	if err := s.repos.Users.UpdateUser(ctx, user); err != nil {
		return nil, repoError(err, "User")
	}
	return user, nil
}

// RevokeAdmin demotes an admin back to user.
func (s *AdminService) RevokeAdmin(ctx context.Context, actor *models.User, userID string) (*models.User, error) {
	user, err := s.target(ctx, actor, userID, "Cannot revoke your own admin access")
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAdmin {
		return nil, models.NewConflictError("User is not an admin")
	}
	user.Role = models.RoleUser
	if err := s.repos.Users.UpdateUser(ctx, user); err != nil {
		return nil, repoError(err, "User")
	}
	return user, nil
}

func (s *AdminService) Ban(ctx context.Context, actor *models.User, userID string) (*models.User, error) {
	user, err := s.target(ctx, actor, userID, "Cannot ban yourself")
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleOwner {
		return nil, models.NewValidationError("Cannot ban the owner")
	}
	now := s.now()
	user.Banned = true
	user.BannedAt = &now
	user.BannedBy = actor.ID
	if err := s.repos.Users.UpdateUser(ctx, user); err != nil {
		return nil, repoError(err, "User")
	}
	metrics.Event("user_banned")
	return user, nil
}

func (s *AdminService) Unban(ctx context.Context, actor *models.User, userID string) (*models.User, error) {
	user, err := s.target(ctx, actor, userID, "")
	if err != nil {
		return nil, err
	}
	user.Banned = false
	user.BannedAt = nil
	user.BannedBy = ""
	if err := s.repos.Users.UpdateUser(ctx, user); err != nil {
		return nil, repoError(err, "User")
	}
	return user, nil
}
