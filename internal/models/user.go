package models

import (
	"strings"
	"time"
)

// User roles.
const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// DefaultPhoto is assigned to users who have not uploaded one.
const DefaultPhoto = "default.jpg"

// User represents an account.
type User struct {
	Base                 `bson:",inline"`
	Name                 string     `json:"name" bson:"name" binding:"required" example:"Leo Gillespie"`
	Email                string     `json:"email" bson:"email" binding:"required,email" example:"leo@example.com"`
	Photo                string     `json:"photo" bson:"photo" example:"user-1.jpg"`
	Role                 string     `json:"role" bson:"role" binding:"omitempty,oneof=user guide lead-guide admin" example:"user"`
	Password             string     `json:"-" bson:"password"`
	PasswordChangedAt    *time.Time `json:"passwordChangedAt,omitempty" bson:"passwordChangedAt,omitempty"`
	PasswordResetToken   string     `json:"-" bson:"passwordResetToken,omitempty"`
	PasswordResetExpires *time.Time `json:"-" bson:"passwordResetExpires,omitempty"`
	Active               bool       `json:"-" bson:"active"`
}

// ApplyDefaults normalizes a new user.
func (u *User) ApplyDefaults() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Photo == "" {
		u.Photo = DefaultPhoto
	}
	u.Active = true
}

// ChangedPasswordAfter reports whether the password changed after t,
// compared at second precision like JWT timestamps.
func (u *User) ChangedPasswordAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > t.Unix()
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Photo: u.Photo, Role: u.Role}
}

// SignupRequest is the payload for creating an account.
type SignupRequest struct {
	Name            string `json:"name" binding:"required" example:"Leo Gillespie"`
	Email           string `json:"email" binding:"required,email" example:"leo@example.com"`
	Password        string `json:"password" binding:"required,min=8" example:"test1234"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password" example:"test1234"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" example:"leo@example.com"`
	Password string `json:"password" example:"test1234"`
}

// ForgotPasswordRequest is the payload for requesting a reset email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"leo@example.com"`
}

// ResetPasswordRequest is the payload for setting a new password with a reset token.
type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8" example:"newpass123"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password" example:"newpass123"`
}

// UpdatePasswordRequest is the payload for changing the password while logged in.
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" binding:"required" example:"test1234"`
	Password        string `json:"password" binding:"required,min=8" example:"newpass123"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password" example:"newpass123"`
}

// UpdateMeRequest is the payload for updating the current user's profile.
// Password fields are accepted only so they can be rejected explicitly.
type UpdateMeRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1" example:"Leo J. Gillespie"`
	Email           *string `json:"email" binding:"omitempty,email" example:"leo.j@example.com"`
	Password        *string `json:"password" swaggerignore:"true"`
	PasswordConfirm *string `json:"passwordConfirm" swaggerignore:"true"`
}

// AuthResponse is returned after signup, login and password changes.
type AuthResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	User  *User  `json:"user"`
}

