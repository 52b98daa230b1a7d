package services

import (
	"math"
	"regexp"
	"strings"
	"time"
)

var (
	hashtagPattern = regexp.MustCompile(`#\w+`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
)

// TrendingScore divides reactions by the post's age in hours, counting at least one hour.
func TrendingScore(reactions int, age time.Duration) float64 {
	hours := age.Hours()
	if hours < 1 {
		hours = 1
	}
	return float64(reactions) / hours
}

func PopularityScore(followers, posts int) int {
	return followers*2 + posts
}

// EngagementRate is (likes+comments)/posts rounded to one decimal, 0 without posts.
func EngagementRate(likes, comments, posts int) float64 {
	if posts == 0 {
		return 0
	}
	return math.Round(float64(likes+comments)/float64(posts)*10) / 10
}

// ExtractHashtags returns every hashtag in content, lowercased and without the leading '#'.
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllString(content, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(strings.TrimPrefix(m, "#")))
	}
	return tags
}

// hashtagMatcher matches tag as a whole hashtag, ignoring case.
func hashtagMatcher(tag string) *regexp.Regexp {
	tag = strings.TrimPrefix(tag, "#")
	return regexp.MustCompile(`(?i)#` + regexp.QuoteMeta(tag) + `\b`)
}

// ExtractMentions returns the distinct @handles in content, lowercased.
func ExtractMentions(content string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range mentionPattern.FindAllStringSubmatch(content, -1) {
		handle := strings.ToLower(m[1])
		if !seen[handle] {
			seen[handle] = true
			out = append(out, handle)
		}
	}
	return out
}
