package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole maps an identity-provider user to an application role
type UserRole struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	UserID    string    `gorm:"type:text;not null;uniqueIndex" json:"user_id"`
	Role      string    `gorm:"not null;default:user" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for UserRole
func (UserRole) TableName() string {
	return "user_roles"
}

// BeforeCreate hook for setting defaults
func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Role == "" {
		r.Role = RoleUser
	}
	return nil
}

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGod   = "god"
)

// Roles lists the known roles from least to most privileged
var Roles = []string{RoleUser, RoleAdmin, RoleGod}

// IsValidRole reports whether role is one of the known roles
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin || role == RoleGod
}

// IsAdminRole returns true for roles allowed into the admin area
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleGod
}
