package models

import "time"

// Post represents a post stored in MongoDB
type Post struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	Content   string    `json:"content" bson:"content"`
	Image     *string   `json:"image" bson:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string  `json:"content"`
	Image   *string `json:"image"`
}

// FeedPost is a post joined with its author and engagement.
type FeedPost struct {
	Post
	UserName  string        `json:"userName"`
	UserImage string        `json:"userImage"`
	Likes     []string      `json:"likes"`
	Comments  []CommentView `json:"comments"`
}

// TrendingPost is a feed post with its trending score.
type TrendingPost struct {
	FeedPost
	ReactionCount int     `json:"reactionCount"`
	TrendingScore float64 `json:"trendingScore"`
}
