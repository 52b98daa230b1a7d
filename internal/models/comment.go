package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	PostID    string    `json:"postId" gorm:"index;size:36"`
	UserID    string    `json:"userId" gorm:"index;size:36"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type CommentView struct {
	Comment
	UserName string `json:"userName"`
}
