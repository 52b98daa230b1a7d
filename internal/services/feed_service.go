package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
)

const (
	trendingLimit    = 20
	popularLimit     = 10
	hashtagLimit     = 10
	recommendedLimit = 5
)

// FeedService builds read-only views over posts, follows and profiles.
// Every call recomputes from full scans.
type FeedService struct {
	repos *repositories.Set
	now   func() time.Time
}

func NewFeedService(repos *repositories.Set) *FeedService {
	return &FeedService{repos: repos, now: time.Now}
}

// Global returns every post, newest first.
func (s *FeedService) Global(ctx context.Context) ([]models.FeedPost, error) {
	posts, err := s.repos.Posts.ListPosts(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return enrichPosts(ctx, s.repos, posts)
}

// ByUser returns one author's posts, newest first.
func (s *FeedService) ByUser(ctx context.Context, userID string) ([]models.FeedPost, error) {
	posts, err := s.repos.Posts.ListPostsByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return enrichPosts(ctx, s.repos, posts)
}

// Trending ranks posts by reactions per hour of age.
func (s *FeedService) Trending(ctx context.Context) ([]models.TrendingPost, error) {
	posts, err := s.repos.Posts.ListPosts(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	reactions, err := s.repos.Reactions.ListReactionsByPosts(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	perPost := make(map[string]int)
	for _, r := range reactions {
		perPost[r.PostID]++
	}

	enriched, err := enrichPosts(ctx, s.repos, posts)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]models.TrendingPost, len(enriched))
	for i, fp := range enriched {
		n := perPost[fp.ID]
		out[i] = models.TrendingPost{
			FeedPost:      fp,
			ReactionCount: n,
			TrendingScore: TrendingScore(n, now.Sub(fp.CreatedAt)),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TrendingScore > out[j].TrendingScore })
	if len(out) > trendingLimit {
		out = out[:trendingLimit]
	}
	return out, nil
}

// PopularUsers ranks authors by followers*2 + posts.
func (s *FeedService) PopularUsers(ctx context.Context) ([]models.PopularUser, error) {
	follows, err := s.repos.Follows.ListFollows(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	posts, err := s.repos.Posts.ListPosts(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	dir, err := loadDirectory(ctx, s.repos.Profiles)
	if err != nil {
		return nil, err
	}

	type stats struct{ followers, posts int }
	byUser := make(map[string]*stats)
	var order []string
	get := func(id string) *stats {
		st, ok := byUser[id]
		if !ok {
			st = &stats{}
			byUser[id] = st
			order = append(order, id)
		}
		return st
	}
	for _, f := range follows {
		get(f.FollowingID).followers++
	}
	for _, p := range posts {
		get(p.UserID).posts++
	}

	out := make([]models.PopularUser, 0, len(order))
	for _, id := range order {
		st := byUser[id]
		out = append(out, models.PopularUser{
			UserID:          id,
			Name:            dir.name(id),
			ProfileImage:    dir.image(id),
			Stream:          dir[id].Stream,
			FollowersCount:  st.followers,
			PostsCount:      st.posts,
			PopularityScore: PopularityScore(st.followers, st.posts),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PopularityScore > out[j].PopularityScore })
	if len(out) > popularLimit {
		out = out[:popularLimit]
	}
	return out, nil
}

// TrendingHashtags counts lowercased hashtags across all posts.
func (s *FeedService) TrendingHashtags(ctx context.Context) ([]models.HashtagCount, error) {
	posts, err := s.repos.Posts.ListPosts(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		for _, tag := range ExtractHashtags(p.Content) {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	out := make([]models.HashtagCount, 0, len(order))
	for _, tag := range order {
		out = append(out, models.HashtagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > hashtagLimit {
		out = out[:hashtagLimit]
	}
	return out, nil
}

// Hashtag returns posts carrying #tag, newest first.
func (s *FeedService) Hashtag(ctx context.Context, tag string) ([]models.FeedPost, error) {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return nil, models.NewValidationError("Hashtag is required")
	}
	posts, err := s.repos.Posts.ListPosts(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	re := hashtagMatcher(tag)
	var tagged []models.Post
	for _, p := range posts {
		if re.MatchString(p.Content) {
			tagged = append(tagged, p)
		}
	}
	return enrichPosts(ctx, s.repos, tagged)
}

// Recommended suggests profiles the user does not follow yet.
func (s *FeedService) Recommended(ctx context.Context, userID string) ([]models.RecommendedUser, error) {
	following, err := s.repos.Follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	followed := make(map[string]bool, len(following))
	for _, f := range following {
		followed[f.FollowingID] = true
	}
	profiles, err := s.repos.Profiles.ListProfiles(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	out := make([]models.RecommendedUser, 0, recommendedLimit)
	for _, p := range profiles {
		if p.UserID == userID || followed[p.UserID] {
			continue
		}
		out = append(out, models.RecommendedUser{
			UserID:       p.UserID,
			Name:         p.Name,
			ProfileImage: p.ProfileImage,
			Stream:       p.Stream,
			Bio:          p.Bio,
		})
		if len(out) == recommendedLimit {
			break
		}
	}
	return out, nil
}
