package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
	"github.com/anonto42/sach-wave/backend/internal/validators"
	"github.com/google/uuid"
)

const defaultAccentColor = "purple"

type ProfileService struct {
	profiles repositories.ProfileRepository
	users    repositories.UserRepository
	now      func() time.Time
}

func NewProfileService(profiles repositories.ProfileRepository, users repositories.UserRepository) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, now: time.Now}
}

// Get returns the profile of userID together with the account role.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.ProfileView, error) {
	p, err := s.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Profile")
	}
	view := &models.ProfileView{Profile: *p, Role: models.RoleUser}
	if u, err := s.users.GetUserByID(ctx, userID); err == nil {
		view.Role = u.Role
	}
	return view, nil
}

// Upsert creates or replaces the caller's profile.
func (s *ProfileService) Upsert(ctx context.Context, userID string, req models.UpsertProfileRequest) (*models.Profile, error) {
	p := &models.Profile{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         validators.SanitizeText(req.Name),
		DateOfBirth:  strings.TrimSpace(req.DateOfBirth),
		RollNumber:   strings.TrimSpace(req.RollNumber),
		Stream:       strings.TrimSpace(req.Stream),
		Bio:          validators.SanitizeText(req.Bio),
		ProfileImage: req.ProfileImage,
		CoverImage:   req.CoverImage,
		AccentColor:  req.AccentColor,
	}
	if p.Name == "" || p.DateOfBirth == "" || p.RollNumber == "" || p.Stream == "" {
		return nil, models.NewValidationError("Required fields are missing")
	}
	if p.AccentColor == "" {
		p.AccentColor = defaultAccentColor
	}
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.profiles.UpsertProfile(ctx, p); err != nil {
		return nil, models.NewInternalError(err)
	}
	return p, nil
}

// Update merges the fields present in req into the caller's own profile.
func (s *ProfileService) Update(ctx context.Context, requesterID, userID string, req models.UpdateProfileRequest) (*models.Profile, error) {
	if requesterID != userID {
		return nil, models.NewAuthorizationError("Not authorized")
	}
	p, err := s.profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Profile")
	}

	set := func(dst *string, src *string, clean func(string) string) {
		if src != nil {
			*dst = clean(*src)
		}
	}
	set(&p.Name, req.Name, validators.SanitizeText)
	set(&p.DateOfBirth, req.DateOfBirth, strings.TrimSpace)
	set(&p.RollNumber, req.RollNumber, strings.TrimSpace)
	set(&p.Stream, req.Stream, strings.TrimSpace)
	set(&p.Bio, req.Bio, validators.SanitizeText)
	set(&p.ProfileImage, req.ProfileImage, strings.TrimSpace)
	set(&p.CoverImage, req.CoverImage, strings.TrimSpace)
	set(&p.AccentColor, req.AccentColor, strings.TrimSpace)
	if p.Name == "" || p.DateOfBirth == "" || p.RollNumber == "" || p.Stream == "" {
		return nil, models.NewValidationError("Required fields are missing")
	}
	p.UpdatedAt = s.now()

	if err := s.profiles.UpsertProfile(ctx, p); err != nil {
		return nil, models.NewInternalError(err)
	}
	return p, nil
}

// Search matches name, stream or roll number case-insensitively. An empty query matches nothing.
func (s *ProfileService) Search(ctx context.Context, q string) ([]models.ProfileSearchResult, error) {
	term := strings.ToLower(strings.TrimSpace(q))
	if term == "" {
		return []models.ProfileSearchResult{}, nil
	}
	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}

	out := []models.ProfileSearchResult{}
	for _, p := range profiles {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Stream), term) ||
			strings.Contains(strings.ToLower(p.RollNumber), term) {
			out = append(out, models.ProfileSearchResult{Profile: p, Email: emails[p.UserID]})
		}
	}
	return out, nil
}
