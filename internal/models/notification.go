package models

import "time"

type NotificationType string

const (
	NotificationLike     NotificationType = "like"
	NotificationReaction NotificationType = "reaction"
	NotificationComment  NotificationType = "comment"
	NotificationFollow   NotificationType = "follow"
	NotificationMention  NotificationType = "mention"
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID           string           `json:"id" gorm:"primaryKey;size:36"`
	UserID       string           `json:"userId" gorm:"size:36;index"`
	Type         NotificationType `json:"type" gorm:"size:20"`
	FromUserID   string           `json:"fromUserId,omitempty" gorm:"size:36"`
	PostID       string           `json:"postId,omitempty" gorm:"size:36"`
	Comment      string           `json:"comment,omitempty"`
	ReactionType ReactionType     `json:"reactionType,omitempty" gorm:"size:10"`
	Message      string           `json:"message"`
	Read         bool             `json:"read" gorm:"default:false;index"`
	CreatedAt    time.Time        `json:"createdAt" gorm:"index"`
}
