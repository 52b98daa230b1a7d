package models

import "time"

type StoryType string

const (
	StoryImage StoryType = "image"
	StoryText  StoryType = "text"
)

// StoryLifetime is how long a story stays in the active list.
const StoryLifetime = 24 * time.Hour

// Story represents a user's story stored in MongoDB
type Story struct {
	ID         string    `json:"id" bson:"_id"`
	UserID     string    `json:"userId" bson:"userId"`
	Type       StoryType `json:"type" bson:"type"`
	Image      string    `json:"image,omitempty" bson:"image,omitempty"`
	Content    string    `json:"content,omitempty" bson:"content,omitempty"`
	Background int       `json:"background" bson:"background"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// ActiveAt reports whether the story is still visible at now.
func (s *Story) ActiveAt(now time.Time) bool {
	return s.CreatedAt.After(now.Add(-StoryLifetime))
}

// StoryView records that a user has seen a story (PostgreSQL)
type StoryView struct {
	ID       string    `json:"id" gorm:"primaryKey;size:36"`
	StoryID  string    `json:"storyId" gorm:"size:36;uniqueIndex:idx_story_view"`
	UserID   string    `json:"userId" gorm:"size:36;uniqueIndex:idx_story_view;index"`
	ViewedAt time.Time `json:"viewedAt"`
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	Type       StoryType `json:"type" validate:"omitempty,oneof=image text"`
	Image      string    `json:"image"`
	Content    string    `json:"content"`
	Background int       `json:"background" validate:"min=0"`
}

type StoryFeedItem struct {
	Story
	UserName  string `json:"userName"`
	UserImage string `json:"userImage"`
}

type StoryViewer struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserImage string    `json:"userImage"`
	ViewedAt  time.Time `json:"viewedAt"`
}
