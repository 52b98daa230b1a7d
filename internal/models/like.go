package models

import "time"

// Like represents a like on a post
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	PostID    string    `json:"postId" gorm:"size:36;uniqueIndex:idx_like_post_user"`
	UserID    string    `json:"userId" gorm:"size:36;uniqueIndex:idx_like_post_user;index"`
	CreatedAt time.Time `json:"createdAt"`
}
