package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is the closed set of account privileges, ordered user < admin < owner.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

func (r Role) rank() int {
	switch r {
	case RoleOwner:
		return 2
	case RoleAdmin:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r grants every privilege of other.
func (r Role) AtLeast(other Role) bool {
	return r.rank() >= other.rank()
}

type User struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null"`
	Password    string     `json:"-"`
	FirebaseUID *string    `json:"firebaseUid,omitempty" gorm:"uniqueIndex"`
	Role        Role       `json:"role" gorm:"size:10;default:user"`
	Suspended   bool       `json:"suspended"`
	Banned      bool       `json:"banned"`
	BannedAt    *time.Time `json:"bannedAt,omitempty"`
	BannedBy    string     `json:"bannedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// IsAdmin reports whether the user may use the moderation surface.
func (u *User) IsAdmin() bool {
	return u.Role.AtLeast(RoleAdmin)
}

// PublicUser is the account summary returned by the auth endpoints.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type VerifyCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
