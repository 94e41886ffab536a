package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Role is a named permission group. Roles are seeded and never mutated by the workflows.
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:50;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
}

type UserRole struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RoleID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"role_id"`
	AssignedAt time.Time `gorm:"not null" json:"assigned_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
