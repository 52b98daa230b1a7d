package services

import (
	"math"
	"strings"
)

// Level is one rung of the level ladder.
type Level struct {
	Name      string
	MinPoints int
	Icon      string
}

// Levels is ordered by ascending threshold.
var Levels = []Level{
	{Name: "Newbie", MinPoints: 0, Icon: "🌱"},
	{Name: "Active", MinPoints: 100, Icon: "🌿"},
	{Name: "Popular", MinPoints: 500, Icon: "🌳"},
	{Name: "Star Student", MinPoints: 1000, Icon: "⭐"},
}

// LevelFor returns the highest level whose threshold is at most points.
func LevelFor(points int) Level {
	for i := len(Levels) - 1; i >= 0; i-- {
		if points >= Levels[i].MinPoints {
			return Levels[i]
		}
	}
	return Levels[0]
}

// NextLevel returns the first level above points, or nil at the top of the ladder.
func NextLevel(points int) *Level {
	for i := range Levels {
		if Levels[i].MinPoints > points {
			return &Levels[i]
		}
	}
	return nil
}

// Progress is the rounded percentage between the current and the next threshold.
func Progress(points int) int {
	next := NextLevel(points)
	if next == nil {
		return 100
	}
	cur := LevelFor(points)
	pct := float64(points-cur.MinPoints) / float64(next.MinPoints-cur.MinPoints) * 100
	return int(math.Round(pct))
}

// BadgeFor names the badge earned on reaching level, e.g. "star_student".
func BadgeFor(level Level) string {
	return strings.ReplaceAll(strings.ToLower(level.Name), " ", "_")
}

// Action is a domain event that earns points.
type Action string

const (
	ActionCreatePost     Action = "CREATE_POST"
	ActionCreateStory    Action = "CREATE_STORY"
	ActionReceiveLike    Action = "RECEIVE_LIKE"
	ActionReceiveComment Action = "RECEIVE_COMMENT"
	ActionNewFollower    Action = "NEW_FOLLOWER"
	ActionDailyLogin     Action = "DAILY_LOGIN"
)

var actionPoints = map[Action]int{
	ActionCreatePost:     10,
	ActionCreateStory:    5,
	ActionReceiveLike:    2,
	ActionReceiveComment: 5,
	ActionNewFollower:    10,
	ActionDailyLogin:     5,
}

// Points returns what the action is worth, 0 for unknown actions.
func (a Action) Points() int {
	return actionPoints[a]
}
