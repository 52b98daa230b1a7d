package models

import "time"

// UserPoints is the point accumulator of one user.
type UserPoints struct {
	ID        string        `json:"id" gorm:"primaryKey;size:36"`
	UserID    string        `json:"userId" gorm:"uniqueIndex;size:36"`
	Points    int           `json:"points"`
	Level     string        `json:"level"`
	Badges    []string      `json:"badges" gorm:"serializer:json"`
	History   []PointsEntry `json:"history" gorm:"serializer:json"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// HasBadge reports whether badge has already been granted.
func (p *UserPoints) HasBadge(badge string) bool {
	for _, b := range p.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

type PointsEntry struct {
	ID        string    `json:"id"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

type AwardRequest struct {
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

type PointsSummary struct {
	Points            int      `json:"points"`
	Level             string   `json:"level"`
	Badge             string   `json:"badge"`
	Progress          int      `json:"progress"`
	NextLevel         *string  `json:"nextLevel"`
	PointsToNextLevel int      `json:"pointsToNextLevel"`
	Badges            []string `json:"badges"`
}

type AwardResult struct {
	Points    int    `json:"points"`
	Level     string `json:"level"`
	LeveledUp bool   `json:"leveledUp"`
}

type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
	Points       int    `json:"points"`
	Level        string `json:"level"`
	Badge        string `json:"badge"`
}
