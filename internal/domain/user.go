// Package domain contains core domain types for the Pathlight application.
package domain

import (
	"time"
)

// Role identifies a user's access level.
type Role string

const (
	// RoleStudent is the default role for new users.
	RoleStudent Role = "student"
	// RoleMentor can manage mentor sessions and community content.
	RoleMentor Role = "mentor"
	// RoleAdmin can manage users and all content.
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleStudent, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

// DashboardPath returns the frontend route for a role's dashboard.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleMentor:
		return "/mentor/dashboard"
	default:
		return "/dashboard"
	}
}

// User represents a user of the platform.
type User struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Role       Role      `json:"role"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
