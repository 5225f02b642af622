package models

import "time"

// User represents a staff account. Role is one of the canonical role
// identifiers (RoleAdmin, RoleManager, RoleCashier, RoleWaiter, RoleKitchen).
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" db:"name"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Actor identifies the authenticated principal performing an operation. It is
// resolved from verified JWT claims by the auth middleware; services trust it
// and never read roles from client-supplied headers.
type Actor struct {
	UserID   int64
	UserName string
	Role     string
}

// Credentials for login request
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
