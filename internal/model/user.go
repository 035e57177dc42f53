package model

import "time"

// UserRole tags how a user account came to exist.
type UserRole string

const (
	RoleSelfRegistered UserRole = "self-registered"
	RoleAdminCreated   UserRole = "admin-created"
)

// UnlimitedAISentinel is stored as the daily limit for unlimited users.
// The column is a plain integer, so "no limit" is a large sentinel
// rather than true infinity.
const UnlimitedAISentinel = 999999

// User represents a regular quiz user. Usernames are unique
// case-insensitively (stored lowercased); PINs are unique within the
// user table, independently of admin PINs.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	PIN          string    `json:"-"`
	Email        *string   `json:"email"`
	Role         UserRole  `json:"role"`
	UnlimitedAI  bool      `json:"unlimitedAI"`
	DailyAILimit int       `json:"dailyAILimit"`
	CreatedBy    *string   `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest is the payload for self-service registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	PIN      string `json:"pin" binding:"required,pin"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
}

// UserLoginRequest is the payload for user authentication.
type UserLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	PIN      string `json:"pin" binding:"required,pin"`
}

// CreateUserRequest is the payload for admin-created user accounts.
type CreateUserRequest struct {
	Username     string `json:"username" binding:"required,max=255"`
	Password     string `json:"password" binding:"required,min=6,max=128"`
	PIN          string `json:"pin" binding:"required,pin"`
	Email        string `json:"email" binding:"omitempty,email,max=255"`
	UnlimitedAI  bool   `json:"unlimitedAI"`
	DailyAILimit *int   `json:"dailyAILimit" binding:"omitempty,min=0"`
}

// UpdateUserRequest carries partial updates; only non-nil fields are
// written.
type UpdateUserRequest struct {
	Username     *string `json:"username" binding:"omitempty,max=255"`
	Password     *string `json:"password" binding:"omitempty,min=6,max=128"`
	PIN          *string `json:"pin" binding:"omitempty,pin"`
	Email        *string `json:"email" binding:"omitempty,email,max=255"`
	UnlimitedAI  *bool   `json:"unlimitedAI"`
	DailyAILimit *int    `json:"dailyAILimit" binding:"omitempty,min=0"`
}
