package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/metrics"
	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
	"github.com/anonto42/sach-wave/backend/internal/validators"
	"github.com/google/uuid"
)

type PostService struct {
	repos    *repositories.Set
	notifier Notifier
	awarder  Awarder
	now      func() time.Time
}

func NewPostService(repos *repositories.Set, notifier Notifier, awarder Awarder) *PostService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if awarder == nil {
		awarder = nopAwarder{}
	}
	return &PostService{repos: repos, notifier: notifier, awarder: awarder, now: time.Now}
}

// CreatePost stores a post. At least one of content and image is required.
func (s *PostService) CreatePost(ctx context.Context, userID string, req models.CreatePostRequest) (*models.FeedPost, error) {
	content := validators.SanitizeText(req.Content)
	var image *string
	if req.Image != nil && strings.TrimSpace(*req.Image) != "" {
		img := strings.TrimSpace(*req.Image)
		image = &img
	}
	if content == "" && image == nil {
		return nil, models.NewValidationError("Post must have content or image")
	}

	post := models.Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Image:     image,
		CreatedAt: s.now(),
	}
	if err := s.repos.Posts.CreatePost(ctx, &post); err != nil {
		return nil, models.NewInternalError(err)
	}
	metrics.Event("post_created")

	s.awarder.AwardFor(ctx, userID, ActionCreatePost)
	s.notifyMentions(ctx, userID, post.ID, content, "mentioned you in a post")

	enriched, err := enrichPosts(ctx, s.repos, []models.Post{post})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*models.FeedPost, error) {
	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, repoError(err, "Post")
	}
	enriched, err := enrichPosts(ctx, s.repos, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// DeletePost removes a post and everything attached to it. Only the author or an admin may do this.
func (s *PostService) DeletePost(ctx context.Context, requester *models.User, postID string) error {
	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return repoError(err, "Post")
	}
	if post.UserID != requester.ID && !requester.IsAdmin() {
		return models.NewAuthorizationError("Not authorized")
	}
	if err := s.repos.Posts.DeletePost(ctx, postID); err != nil {
		return repoError(err, "Post")
	}
	if err := deletePosts(ctx, s.repos, []string{postID}); err != nil {
		return models.NewInternalError(err)
	}
	metrics.Event("post_deleted")
	return nil
}

// ToggleLike likes the post, or removes an existing like. It reports the new state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return false, repoError(err, "Post")
	}
	liked, err := s.repos.Likes.ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if liked && post.UserID != userID {
		metrics.Event("like")
		s.notifier.Notify(ctx, models.Notification{
			UserID:     post.UserID,
			Type:       models.NotificationLike,
			FromUserID: userID,
			PostID:     postID,
			Message:    "liked your post",
		})
		s.awarder.AwardFor(ctx, post.UserID, ActionReceiveLike)
	}
	return liked, nil
}

func (s *PostService) AddComment(ctx context.Context, userID, postID, content string) (*models.CommentView, error) {
	content = validators.SanitizeText(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	post, err := s.repos.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, repoError(err, "Post")
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.repos.Comments.CreateComment(ctx, &comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	metrics.Event("comment")

	if post.UserID != userID {
		s.notifier.Notify(ctx, models.Notification{
			UserID:     post.UserID,
			Type:       models.NotificationComment,
			FromUserID: userID,
			PostID:     postID,
			Comment:    content,
			Message:    "commented on your post",
		})
		s.awarder.AwardFor(ctx, post.UserID, ActionReceiveComment)
	}
	s.notifyMentions(ctx, userID, postID, content, "mentioned you in a comment")

	dir, err := loadDirectory(ctx, s.repos.Profiles)
	if err != nil {
		return nil, err
	}
	return &models.CommentView{Comment: comment, UserName: dir.name(userID)}, nil
}

// ListComments returns the post's comments, oldest first.
func (s *PostService) ListComments(ctx context.Context, postID string) ([]models.CommentView, error) {
	comments, err := s.repos.Comments.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	dir, err := loadDirectory(ctx, s.repos.Profiles)
	if err != nil {
		return nil, err
	}
	out := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, models.CommentView{Comment: c, UserName: dir.name(c.UserID)})
	}
	return out, nil
}

// notifyMentions sends a mention to every profile whose roll number appears as @handle in text.
func (s *PostService) notifyMentions(ctx context.Context, fromUserID, postID, text, message string) {
	handles := ExtractMentions(text)
	if len(handles) == 0 {
		return
	}
	profiles, err := s.repos.Profiles.ListProfiles(ctx)
	if err != nil {
		logSideEffect(ctx, "resolve mentions", err, "post_id", postID)
		return
	}
	byRoll := make(map[string]string, len(profiles))
	for _, p := range profiles {
		if p.RollNumber != "" {
			byRoll[strings.ToLower(p.RollNumber)] = p.UserID
		}
	}
	for _, h := range handles {
		userID, ok := byRoll[h]
		if !ok {
			continue
		}
		s.notifier.Notify(ctx, models.Notification{
			UserID:     userID,
			Type:       models.NotificationMention,
			FromUserID: fromUserID,
			PostID:     postID,
			Message:    message,
		})
	}
}
