package repositories

import (
	"context"
	"slices"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"gorm.io/gorm"
)

// StoryViewRepository records who has seen which story, once per viewer.
type StoryViewRepository interface {
	// RecordView stores the view unless the viewer already saw the story, and reports whether it was new.
	RecordView(ctx context.Context, view *models.StoryView) (bool, error)
	// ListViewsByStory returns the views of a story, newest first.
	ListViewsByStory(ctx context.Context, storyID string) ([]models.StoryView, error)
	CountViews(ctx context.Context) (int64, error)
	DeleteViewsByStories(ctx context.Context, storyIDs []string) error
	DeleteViewsByUser(ctx context.Context, userID string) error
}

type PostgresStoryViewRepository struct {
	db *gorm.DB
}

func NewPostgresStoryViewRepository(db *gorm.DB) *PostgresStoryViewRepository {
	return &PostgresStoryViewRepository{db: db}
}

func (r *PostgresStoryViewRepository) RecordView(ctx context.Context, view *models.StoryView) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.StoryView{}).Where("story_id = ? AND user_id = ?", view.StoryID, view.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(view).Error; err != nil {
			return gormError(err)
		}
		created = true
		return nil
	})
	return created, err
}

func (r *PostgresStoryViewRepository) ListViewsByStory(ctx context.Context, storyID string) ([]models.StoryView, error) {
	var views []models.StoryView
	err := r.db.WithContext(ctx).Where("story_id = ?", storyID).Order("viewed_at desc").Find(&views).Error
	return views, err
}

func (r *PostgresStoryViewRepository) CountViews(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StoryView{}).Count(&count).Error
	return count, err
}

func (r *PostgresStoryViewRepository) DeleteViewsByStories(ctx context.Context, storyIDs []string) error {
	if len(storyIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("story_id IN ?", storyIDs).Delete(&models.StoryView{}).Error
}

func (r *PostgresStoryViewRepository) DeleteViewsByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.StoryView{}).Error
}

type FileStoryViewRepository struct {
	views *recordstore.Collection[models.StoryView]
}

func NewFileStoryViewRepository(store *recordstore.Store) *FileStoryViewRepository {
	return &FileStoryViewRepository{views: recordstore.NewCollection[models.StoryView](store, storyViewsCollection)}
}

func (r *FileStoryViewRepository) RecordView(_ context.Context, view *models.StoryView) (bool, error) {
	created := false
	err := r.views.Update(func(views []models.StoryView) ([]models.StoryView, error) {
		for _, v := range views {
			if v.StoryID == view.StoryID && v.UserID == view.UserID {
				return views, nil
			}
		}
		created = true
		return append(views, *view), nil
	})
	return created, err
}

func (r *FileStoryViewRepository) ListViewsByStory(_ context.Context, storyID string) ([]models.StoryView, error) {
	views, err := r.views.Filter(func(v models.StoryView) bool { return v.StoryID == storyID })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(views, func(a, b models.StoryView) int {
		return b.ViewedAt.Compare(a.ViewedAt)
	})
	return views, nil
}

func (r *FileStoryViewRepository) CountViews(_ context.Context) (int64, error) {
	views, err := r.views.All()
	return int64(len(views)), err
}

func (r *FileStoryViewRepository) DeleteViewsByStories(_ context.Context, storyIDs []string) error {
	ids := idSet(storyIDs)
	_, err := r.views.Remove(func(v models.StoryView) bool { return ids[v.StoryID] })
	return err
}

func (r *FileStoryViewRepository) DeleteViewsByUser(_ context.Context, userID string) error {
	_, err := r.views.Remove(func(v models.StoryView) bool { return v.UserID == userID })
	return err
}
