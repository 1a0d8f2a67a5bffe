// Package models contains the persistence-level domain types shared by
// repositories and services.
package models

import "time"

// UserRole is the portal-level authorization role of a user.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleStaff  UserRole = "staff"
	RoleClient UserRole = "client"
)

// IsValid reports whether r is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleClient:
		return true
	}
	return false
}

// User is a portal user. Identity is managed by the external provider;
// SubjectID is the provider's stable subject identifier and the natural
// key for sync operations. Rows are never hard-deleted, only deactivated.
type User struct {
	ID        int64     `json:"id"`
	SubjectID string    `json:"-"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
