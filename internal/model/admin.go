package model

import "time"

// AdminUser represents an administrator. Admins authenticate with their
// PIN alone; the PIN is unique within the admin table and never leaves
// the server.
type AdminUser struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	PIN       string    `json:"-"`
	AILimit   int       `json:"aiLimit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdminLoginRequest is the payload for admin authentication.
type AdminLoginRequest struct {
	PIN string `json:"pin" binding:"required,pin"`
}

// CreateAdminRequest is the payload for creating a new admin.
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	PIN      string `json:"pin" binding:"required,pin"`
	AILimit  *int   `json:"aiLimit" binding:"omitempty,min=0"`
}

// UpdateAdminRequest carries partial updates; only non-nil fields are
// written. An update with no recognized fields is rejected.
type UpdateAdminRequest struct {
	Username *string `json:"username" binding:"omitempty,max=255"`
	PIN      *string `json:"pin" binding:"omitempty,pin"`
	AILimit  *int    `json:"aiLimit" binding:"omitempty,min=0"`
}
