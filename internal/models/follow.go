package models

import "time"

// Follow is a directed edge from FollowerID to FollowingID.
type Follow struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	FollowerID  string    `json:"followerId" gorm:"size:36;index;uniqueIndex:idx_follower_following"`
	FollowingID string    `json:"followingId" gorm:"size:36;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"createdAt"`
}

type FollowStatus struct {
	IsFollowing bool `json:"isFollowing"`
	FollowsYou  bool `json:"followsYou"`
}

type FollowCounts struct {
	FollowersCount int `json:"followersCount"`
	FollowingCount int `json:"followingCount"`
}

// Connection is one entry of a follower or following list.
type Connection struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ProfileImage string    `json:"profileImage"`
	Stream       string    `json:"stream"`
	FollowedAt   time.Time `json:"followedAt"`
}
