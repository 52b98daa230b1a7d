package models

import "time"

// ReactionType is a typed reaction. The order of ReactionTypes breaks ties.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionFunny   ReactionType = "funny"
	ReactionWow     ReactionType = "wow"
	ReactionSupport ReactionType = "support"
)

var ReactionTypes = []ReactionType{ReactionLike, ReactionFunny, ReactionWow, ReactionSupport}

func (t ReactionType) Valid() bool {
	for _, rt := range ReactionTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// Reaction is stored in MongoDB, unique per (postId, userId).
type Reaction struct {
	ID        string       `json:"id" bson:"_id"`
	PostID    string       `json:"postId" bson:"postId"`
	UserID    string       `json:"userId" bson:"userId"`
	Type      ReactionType `json:"type" bson:"type"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updatedAt"`
}

type ReactRequest struct {
	Type ReactionType `json:"type" validate:"required,oneof=like funny wow support"`
}

// ReactionCounts tallies reactions on a post. Dominant is nil when Total is 0.
type ReactionCounts struct {
	Like     int           `json:"like"`
	Funny    int           `json:"funny"`
	Wow      int           `json:"wow"`
	Support  int           `json:"support"`
	Total    int           `json:"total"`
	Dominant *ReactionType `json:"dominant"`
}

func (c *ReactionCounts) Get(t ReactionType) int {
	switch t {
	case ReactionLike:
		return c.Like
	case ReactionFunny:
		return c.Funny
	case ReactionWow:
		return c.Wow
	case ReactionSupport:
		return c.Support
	}
	return 0
}

func (c *ReactionCounts) add(t ReactionType) {
	switch t {
	case ReactionLike:
		c.Like++
	case ReactionFunny:
		c.Funny++
	case ReactionWow:
		c.Wow++
	case ReactionSupport:
		c.Support++
	default:
		return
	}
	c.Total++
}

// CountReactions tallies reactions and resolves the dominant type.
func CountReactions(reactions []Reaction) ReactionCounts {
	var c ReactionCounts
	for _, r := range reactions {
		c.add(r.Type)
	}
	c.Dominant = c.dominant()
	return c
}

func (c *ReactionCounts) dominant() *ReactionType {
	best, top := ReactionType(""), 0
	for _, t := range ReactionTypes {
		if n := c.Get(t); n > top {
			best, top = t, n
		}
	}
	if top == 0 {
		return nil
	}
	return &best
}
