package models

import "time"

// AdminUser is an account row of the moderation user list.
type AdminUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Suspended    bool      `json:"suspended"`
	Banned       bool      `json:"banned"`
	CreatedAt    time.Time `json:"createdAt"`
	Name         string    `json:"name,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	PostsCount   int       `json:"postsCount"`
}

type TopPost struct {
	Post
	UserName string `json:"userName"`
	Likes    int    `json:"likes"`
}

type ActiveUser struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Posts  int    `json:"posts"`
}

type Analytics struct {
	TotalUsers      int64        `json:"totalUsers"`
	TotalPosts      int64        `json:"totalPosts"`
	TotalStories    int64        `json:"totalStories"`
	TotalLikes      int64        `json:"totalLikes"`
	TotalComments   int64        `json:"totalComments"`
	TotalViews      int64        `json:"totalViews"`
	EngagementRate  float64      `json:"engagementRate"`
	TopPosts        []TopPost    `json:"topPosts"`
	MostActiveUsers []ActiveUser `json:"mostActiveUsers"`
}
