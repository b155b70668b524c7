package models

import (
	"strings"
	"time"
)

// Role values stored on user accounts. Roles are persisted in whatever case
// the operator seeded them with, so comparisons must always go through
// [IsAdminRole] rather than a plain equality check.
const (
	RoleAdmin   = "admin"
	RoleDevice  = "device"
	RoleMonitor = "monitor"
)

// IsAdminRole reports whether role grants administrative privileges.
//
// The comparison is case-insensitive: seeded accounts carry roles like
// "ADMIN" while tokens and filters historically used "admin", and treating
// those as different roles silently excluded every seeded administrator
// from broadcasts. Case-insensitive matching is the documented policy for
// the whole application.
func IsAdminRole(role string) bool {
	return strings.EqualFold(role, RoleAdmin)
}

// User represents an operator or device account used for authentication
// and authorization. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// Email is the contact address of the account owner.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the account password.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// Role determines the account's privileges ("admin", "device", ...).
	// Stored case is not normalised; see IsAdminRole.
	Role string `json:"role"`

	// Active reports whether the account may authenticate.
	Active bool `json:"active"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Profile returns the user's public representation: the subset of fields
// that is safe to return from the auth endpoints.
func (u User) Profile() UserProfile {
	return UserProfile{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Email:    u.Email,
	}
}

// UserProfile is the public projection of a User returned by login,
// refresh and profile endpoints.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}
