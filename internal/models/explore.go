package models

type PopularUser struct {
	UserID          string `json:"userId"`
	Name            string `json:"name"`
	ProfileImage    string `json:"profileImage"`
	Stream          string `json:"stream"`
	FollowersCount  int    `json:"followersCount"`
	PostsCount      int    `json:"postsCount"`
	PopularityScore int    `json:"popularityScore"`
}

type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type RecommendedUser struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
	Stream       string `json:"stream"`
	Bio          string `json:"bio"`
}
