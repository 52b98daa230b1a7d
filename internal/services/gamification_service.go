package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/cache"
	"github.com/anonto42/sach-wave/backend/internal/metrics"
	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
	"github.com/google/uuid"
)

const (
	leaderboardSize = 20
	historyLimit    = 50
)

var errAlreadyAwarded = errors.New("already awarded today")

// Ranker mirrors point totals for fast leaderboard reads.
type Ranker interface {
	Record(ctx context.Context, userID string, points int) error
	Top(ctx context.Context, n int) ([]cache.Standing, error)
	Remove(ctx context.Context, userID string) error
	Reset(ctx context.Context, standings []cache.Standing) error
}

type GamificationService struct {
	points   repositories.PointsRepository
	profiles repositories.ProfileRepository
	ranker   Ranker
	now      func() time.Time
}

// NewGamificationService builds the service. ranker may be nil.
func NewGamificationService(points repositories.PointsRepository, profiles repositories.ProfileRepository, ranker Ranker) *GamificationService {
	return &GamificationService{points: points, profiles: profiles, ranker: ranker, now: time.Now}
}

func ensureDefaults(p *models.UserPoints) {
	if p.Level == "" {
		p.Level = Levels[0].Name
	}
	if p.Badges == nil {
		p.Badges = []string{BadgeFor(Levels[0])}
	}
	if p.History == nil {
		p.History = []models.PointsEntry{}
	}
}

// Award adds points to the user's total, records history and handles level-ups.
func (s *GamificationService) Award(ctx context.Context, userID string, points int, reason string) (*models.AwardResult, error) {
	return s.award(ctx, userID, points, reason, nil)
}

// award applies points atomically. When skip reports true for the current record nothing is saved.
func (s *GamificationService) award(ctx context.Context, userID string, points int, reason string, skip func(*models.UserPoints) bool) (*models.AwardResult, error) {
	if points <= 0 {
		return nil, models.NewValidationError("Invalid points value")
	}
	now := s.now()
	var result models.AwardResult
	saved, err := s.points.ModifyPoints(ctx, userID, func(p *models.UserPoints) error {
		ensureDefaults(p)
		if skip != nil && skip(p) {
			return errAlreadyAwarded
		}
		p.Points += points
		p.History = append(p.History, models.PointsEntry{
			ID:        uuid.NewString(),
			Points:    points,
			Reason:    reason,
			Timestamp: now,
		})
		level := LevelFor(p.Points)
		leveledUp := level.Name != p.Level
		if leveledUp {
			p.Level = level.Name
			if badge := BadgeFor(level); !p.HasBadge(badge) {
				p.Badges = append(p.Badges, badge)
			}
		}
		result = models.AwardResult{Points: p.Points, Level: p.Level, LeveledUp: leveledUp}
		return nil
	})
	if err != nil {
		if errors.Is(err, errAlreadyAwarded) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	metrics.PointsAwarded.WithLabelValues(reason).Add(float64(points))
	if s.ranker != nil {
		logSideEffect(ctx, "leaderboard record", s.ranker.Record(ctx, userID, saved.Points), "user_id", userID)
	}
	return &result, nil
}

// AwardFor grants the points of action. DAILY_LOGIN is granted at most once per UTC day.
func (s *GamificationService) AwardFor(ctx context.Context, userID string, action Action) {
	var skip func(*models.UserPoints) bool
	if action == ActionDailyLogin {
		today := s.now().UTC().Format(time.DateOnly)
		skip = func(p *models.UserPoints) bool {
			for _, h := range p.History {
				if h.Reason == string(ActionDailyLogin) && h.Timestamp.UTC().Format(time.DateOnly) == today {
					return true
				}
			}
			return false
		}
	}
	_, err := s.award(ctx, userID, action.Points(), string(action), skip)
	if errors.Is(err, errAlreadyAwarded) {
		return
	}
	logSideEffect(ctx, "award points", err, "user_id", userID, "action", action)
}

// Summary returns the user's standing, creating an empty record on first use.
func (s *GamificationService) Summary(ctx context.Context, userID string) (*models.PointsSummary, error) {
	p, err := s.points.GetPoints(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		p, err = s.points.ModifyPoints(ctx, userID, func(p *models.UserPoints) error {
			ensureDefaults(p)
			return nil
		})
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	level := LevelFor(p.Points)
	summary := &models.PointsSummary{
		Points:   p.Points,
		Level:    level.Name,
		Badge:    level.Icon,
		Progress: Progress(p.Points),
		Badges:   p.Badges,
	}
	if next := NextLevel(p.Points); next != nil {
		summary.NextLevel = &next.Name
		summary.PointsToNextLevel = next.MinPoints - p.Points
	}
	return summary, nil
}

// History returns the latest entries, newest first.
func (s *GamificationService) History(ctx context.Context, userID string) ([]models.PointsEntry, error) {
	p, err := s.points.GetPoints(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return []models.PointsEntry{}, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	entries := p.History
	if len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}
	out := make([]models.PointsEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

func (s *GamificationService) standings(ctx context.Context) ([]cache.Standing, error) {
	if s.ranker != nil {
		top, err := s.ranker.Top(ctx, leaderboardSize)
		if err == nil {
			return top, nil
		}
		slog.WarnContext(ctx, "leaderboard cache unavailable, reading store", slog.Any("error", err))
	}
	all, err := s.points.ListPoints(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Points > all[j].Points })
	if len(all) > leaderboardSize {
		all = all[:leaderboardSize]
	}
	out := make([]cache.Standing, len(all))
	for i, p := range all {
		out[i] = cache.Standing{UserID: p.UserID, Points: p.Points}
	}
	return out, nil
}

func (s *GamificationService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	top, err := s.standings(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	dir, err := loadDirectory(ctx, s.profiles)
	if err != nil {
		return nil, err
	}
	board := make([]models.LeaderboardEntry, len(top))
	for i, st := range top {
		level := LevelFor(st.Points)
		board[i] = models.LeaderboardEntry{
			Rank:         i + 1,
			UserID:       st.UserID,
			Name:         dir.name(st.UserID),
			ProfileImage: dir.image(st.UserID),
			Points:       st.Points,
			Level:        level.Name,
			Badge:        level.Icon,
		}
	}
	return board, nil
}

// Forget removes the user's points record and leaderboard entry.
func (s *GamificationService) Forget(ctx context.Context, userID string) error {
	if err := s.points.DeletePoints(ctx, userID); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if s.ranker != nil {
		logSideEffect(ctx, "leaderboard remove", s.ranker.Remove(ctx, userID), "user_id", userID)
	}
	return nil
}

// SyncLeaderboard rebuilds the cached leaderboard from the store.
func (s *GamificationService) SyncLeaderboard(ctx context.Context) error {
	if s.ranker == nil {
		return nil
	}
	all, err := s.points.ListPoints(ctx)
	if err != nil {
		return err
	}
	standings := make([]cache.Standing, len(all))
	for i, p := range all {
		standings[i] = cache.Standing{UserID: p.UserID, Points: p.Points}
	}
	return s.ranker.Reset(ctx, standings)
}
