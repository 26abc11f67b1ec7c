// Package models defines data types for the credentialing dashboard.
package models

import (
	"strings"
	"time"
)

// Role is a dashboard access level, ordered viewer < coordinator < admin.
type Role string

// Dashboard roles.
const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleViewer      Role = "viewer"
)

var roleRank = map[Role]int{
	RoleViewer:      1,
	RoleCoordinator: 2,
	RoleAdmin:       3,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]

	return ok
}

// AtLeast reports whether r grants at least the access of min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// User is a dashboard account. PasswordHash never serializes.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateUserRequest is the payload for creating a dashboard account.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

// Validate checks CreateUserRequest fields and normalizes the email.
func (r *CreateUserRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if r.Email == "" {
		return ErrMissingEmail
	}

	if len(r.Email) > 255 {
		return ErrFieldTooLong("email", 255)
	}

	if !strings.Contains(r.Email, "@") {
		return ErrInvalidEmail
	}

	if r.Password == "" {
		return ErrMissingPassword
	}

	if len(r.Password) < 12 {
		return ErrPasswordTooShort
	}

	if len(r.FullName) > 255 {
		return ErrFieldTooLong("full_name", 255)
	}

	if r.Role == "" {
		r.Role = RoleViewer
	}

	if !r.Role.Valid() {
		return ErrInvalidRole
	}

	return nil
}

// UpdateUserRequest is the payload for changing a user's role or state.
type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// Validate checks UpdateUserRequest fields.
func (r *UpdateUserRequest) Validate() error {
	if r.FullName != nil && len(*r.FullName) > 255 {
		return ErrFieldTooLong("full_name", 255)
	}

	if r.Role != nil && !r.Role.Valid() {
		return ErrInvalidRole
	}

	return nil
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate normalizes the email and checks both fields are present.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if r.Email == "" {
		return ErrMissingEmail
	}

	if r.Password == "" {
		return ErrMissingPassword
	}

	return nil
}

// TokenPair is the response to a successful login or refresh. User is set
// on login only.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user,omitempty"`
}

// UserQueryOpts holds filters for listing users.
type UserQueryOpts struct {
	Role   Role
	Active *bool
	Limit  int
	Offset int
}
