package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrendingScore(t *testing.T) {
	assert.Equal(t, 5.0, TrendingScore(10, 2*time.Hour))
	assert.Equal(t, 10.0, TrendingScore(10, 30*time.Minute))
	assert.Equal(t, 0.0, TrendingScore(0, 5*time.Hour))
}

func TestPopularityAndEngagement(t *testing.T) {
	assert.Equal(t, 7, PopularityScore(3, 1))
	assert.Equal(t, 0.0, EngagementRate(4, 2, 0))
	assert.Equal(t, 2.3, EngagementRate(5, 2, 3))
}

func TestExtractHashtags(t *testing.T) {
	assert.Equal(t, []string{"golang", "exams", "golang"}, ExtractHashtags("#GoLang before #exams, then #golang"))
	assert.Empty(t, ExtractHashtags("no tags here"))
}

func TestHashtagMatcher(t *testing.T) {
	re := hashtagMatcher("#Exam")
	assert.True(t, re.MatchString("good luck #exam!"))
	assert.True(t, re.MatchString("#EXAM"))
	assert.False(t, re.MatchString("#exams are over"))
}

func TestExtractMentions(t *testing.T) {
	assert.Equal(t, []string{"r101", "r102"}, ExtractMentions("hey @R101 and @r102, also @r101"))
	assert.Nil(t, ExtractMentions("nobody"))
}

func TestLevels(t *testing.T) {
	tests := []struct {
		points   int
		level    string
		progress int
	}{
		{0, "Newbie", 0},
		{50, "Newbie", 50},
		{100, "Active", 0},
		{300, "Active", 50},
		{999, "Popular", 100},
		{1000, "Star Student", 100},
		{5000, "Star Student", 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelFor(tt.points).Name, "points=%d", tt.points)
		assert.Equal(t, tt.progress, Progress(tt.points), "points=%d", tt.points)
	}
	assert.Nil(t, NextLevel(1000))
	assert.Equal(t, "Popular", NextLevel(120).Name)
	assert.Equal(t, "star_student", BadgeFor(Levels[3]))
	assert.Equal(t, 10, ActionCreatePost.Points())
	assert.Equal(t, 0, Action("UNKNOWN").Points())
}
