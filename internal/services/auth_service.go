package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/sach-wave/backend/internal/metrics"
	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenVerifier checks Firebase ID tokens. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthOptions struct {
	JWTSecret  string
	TokenTTL   time.Duration
	AccessCode string
	// Firebase is optional; FirebaseLogin fails when it is nil.
	Firebase TokenVerifier
}

// AuthResult is returned by every successful sign-in.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type AuthService struct {
	users   repositories.UserRepository
	awarder Awarder
	opts    AuthOptions
	now     func() time.Time
}

func NewAuthService(users repositories.UserRepository, awarder Awarder, opts AuthOptions) *AuthService {
	if awarder == nil {
		awarder = nopAwarder{}
	}
	return &AuthService{users: users, awarder: awarder, opts: opts, now: time.Now}
}

// Signup registers an account. The first account ever created becomes the owner.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  string(hashed),
		CreatedAt: s.now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, models.NewConflictError("User already exists")
		}
		return nil, models.NewInternalError(err)
	}
	metrics.Event("signup")
	return s.result(user)
}

// Login checks credentials and account status, then grants the daily login bonus.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewValidationError("Invalid credentials")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := checkStanding(user); err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.NewValidationError("Invalid credentials")
	}
	s.awarder.AwardFor(ctx, user.ID, ActionDailyLogin)
	metrics.Event("login")
	return s.result(user)
}

// VerifyCode reports whether code matches the configured access code.
func (s *AuthService) VerifyCode(code string) bool {
	return s.opts.AccessCode != "" && code == s.opts.AccessCode
}

// FirebaseLogin verifies a Firebase ID token and signs in the linked account,
// linking by email or creating one when needed.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	if s.opts.Firebase == nil {
		return nil, models.NewValidationError("Firebase sign-in is not configured")
	}
	token, err := s.opts.Firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, models.NewAuthenticationError("Invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByFirebaseUID(ctx, token.UID)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrNotFound):
		user, err = s.linkFirebaseUser(ctx, token.UID, email)
		if err != nil {
			return nil, err
		}
	default:
		return nil, models.NewInternalError(err)
	}

	if err := checkStanding(user); err != nil {
		return nil, err
	}
	s.awarder.AwardFor(ctx, user.ID, ActionDailyLogin)
	return s.result(user)
}

func (s *AuthService) linkFirebaseUser(ctx context.Context, uid, email string) (*models.User, error) {
	if email == "" {
		return nil, models.NewValidationError("Firebase account has no email")
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		user.FirebaseUID = &uid
		if err := s.users.UpdateUser(ctx, user); err != nil {
			return nil, models.NewInternalError(err)
		}
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewInternalError(err)
	}

	user = &models.User{
		ID:          uuid.NewString(),
		Email:       email,
		FirebaseUID: &uid,
		CreatedAt:   s.now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	metrics.Event("signup")
	return user, nil
}

// IssueToken signs a JWT for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.opts.JWTSecret))
}

// Authenticate resolves a bearer token to a user in good standing.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.opts.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, models.NewAuthenticationError("Invalid token")
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, models.NewAuthenticationError("User not found")
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := checkStanding(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) result(user *models.User) (*AuthResult, error) {
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

func checkStanding(user *models.User) error {
	switch {
	case user.Banned:
		return models.NewAuthorizationError("Account banned")
	case user.Suspended:
		return models.NewAuthorizationError("Account suspended")
	}
	return nil
}
