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

type StoryService struct {
	stories  repositories.StoryRepository
	views    repositories.StoryViewRepository
	profiles repositories.ProfileRepository
	awarder  Awarder
	now      func() time.Time
}

func NewStoryService(repos *repositories.Set, awarder Awarder) *StoryService {
	if awarder == nil {
		awarder = nopAwarder{}
	}
	return &StoryService{
		stories:  repos.Stories,
		views:    repos.StoryViews,
		profiles: repos.Profiles,
		awarder:  awarder,
		now:      time.Now,
	}
}

func (s *StoryService) Create(ctx context.Context, userID string, req models.CreateStoryRequest) (*models.StoryFeedItem, error) {
	story := models.Story{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       req.Type,
		Image:      strings.TrimSpace(req.Image),
		Content:    validators.SanitizeText(req.Content),
		Background: req.Background,
		CreatedAt:  s.now(),
	}
	if story.Type == "" {
		story.Type = models.StoryImage
	}
	switch story.Type {
	case models.StoryImage:
		if story.Image == "" {
			return nil, models.NewValidationError("Story must have image or content")
		}
	case models.StoryText:
		if story.Content == "" {
			return nil, models.NewValidationError("Story must have image or content")
		}
	default:
		return nil, models.NewValidationError("Invalid story type")
	}

	if err := s.stories.CreateStory(ctx, &story); err != nil {
		return nil, models.NewInternalError(err)
	}
	metrics.Event("story_created")
	s.awarder.AwardFor(ctx, userID, ActionCreateStory)

	dir, err := loadDirectory(ctx, s.profiles)
	if err != nil {
		return nil, err
	}
	return &models.StoryFeedItem{Story: story, UserName: dir.name(userID), UserImage: dir.image(userID)}, nil
}

// Active lists stories younger than the story lifetime, newest first.
func (s *StoryService) Active(ctx context.Context) ([]models.StoryFeedItem, error) {
	now := s.now()
	list, err := s.stories.ListStoriesSince(ctx, now.Add(-models.StoryLifetime))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	dir, err := loadDirectory(ctx, s.profiles)
	if err != nil {
		return nil, err
	}
	out := make([]models.StoryFeedItem, 0, len(list))
	for _, st := range list {
		if !st.ActiveAt(now) {
			continue
		}
		out = append(out, models.StoryFeedItem{Story: st, UserName: dir.name(st.UserID), UserImage: dir.image(st.UserID)})
	}
	return out, nil
}

// owned loads a story the requester may manage: its author or an admin.
func (s *StoryService) owned(ctx context.Context, requester *models.User, storyID string) (*models.Story, error) {
	story, err := s.stories.GetStoryByID(ctx, storyID)
	if err != nil {
		return nil, repoError(err, "Story")
	}
	if story.UserID != requester.ID && !requester.IsAdmin() {
		return nil, models.NewAuthorizationError("Not authorized")
	}
	return story, nil
}

func (s *StoryService) Delete(ctx context.Context, requester *models.User, storyID string) error {
	if _, err := s.owned(ctx, requester, storyID); err != nil {
		return err
	}
	if err := s.stories.DeleteStory(ctx, storyID); err != nil {
		return repoError(err, "Story")
	}
	if err := s.views.DeleteViewsByStories(ctx, []string{storyID}); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// View records that userID has seen the story. Repeated views are ignored.
func (s *StoryService) View(ctx context.Context, userID, storyID string) error {
	if _, err := s.stories.GetStoryByID(ctx, storyID); err != nil {
		return repoError(err, "Story")
	}
	created, err := s.views.RecordView(ctx, &models.StoryView{
		ID:       uuid.NewString(),
		StoryID:  storyID,
		UserID:   userID,
		ViewedAt: s.now(),
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	if created {
		metrics.Event("story_view")
	}
	return nil
}

// Viewers lists who has seen the story, newest first.
func (s *StoryService) Viewers(ctx context.Context, requester *models.User, storyID string) ([]models.StoryViewer, error) {
	if _, err := s.owned(ctx, requester, storyID); err != nil {
		return nil, err
	}
	views, err := s.views.ListViewsByStory(ctx, storyID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	dir, err := loadDirectory(ctx, s.profiles)
	if err != nil {
		return nil, err
	}
	out := make([]models.StoryViewer, 0, len(views))
	for _, v := range views {
		out = append(out, models.StoryViewer{
			ID:        v.ID,
			UserID:    v.UserID,
			UserName:  dir.name(v.UserID),
			UserImage: dir.image(v.UserID),
			ViewedAt:  v.ViewedAt,
		})
	}
	return out, nil
}
