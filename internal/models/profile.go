package models

import "time"

// Profile holds the display attributes of a user, one per account.
type Profile struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	UserID       string    `json:"userId" gorm:"uniqueIndex;size:36;not null"`
	Name         string    `json:"name"`
	DateOfBirth  string    `json:"dateOfBirth"`
	RollNumber   string    `json:"rollNumber" gorm:"index"`
	Stream       string    `json:"stream"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profileImage"`
	CoverImage   string    `json:"coverImage"`
	AccentColor  string    `json:"accentColor"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UpsertProfileRequest struct {
	Name         string `json:"name" validate:"required"`
	DateOfBirth  string `json:"dateOfBirth" validate:"required"`
	RollNumber   string `json:"rollNumber" validate:"required"`
	Stream       string `json:"stream" validate:"required"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profileImage"`
	CoverImage   string `json:"coverImage"`
	AccentColor  string `json:"accentColor"`
}

// UpdateProfileRequest merges only the fields that are present.
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	DateOfBirth  *string `json:"dateOfBirth"`
	RollNumber   *string `json:"rollNumber"`
	Stream       *string `json:"stream"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profileImage"`
	CoverImage   *string `json:"coverImage"`
	AccentColor  *string `json:"accentColor"`
}

// ProfileView is a profile together with the owner's role.
type ProfileView struct {
	Profile
	Role Role `json:"role"`
}

// ProfileSearchResult is a profile together with the owner's email.
type ProfileSearchResult struct {
	Profile
	Email string `json:"email"`
}
