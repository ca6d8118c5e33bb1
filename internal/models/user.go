package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is a closed set of application roles. Keeping it a dedicated type
// instead of loose strings makes the admin/user distinction checkable at
// compile time.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// UserRole is the join row persisting one role assignment.
type UserRole struct {
	UserID    uint `gorm:"primaryKey"`
	Role      Role `gorm:"primaryKey;size:16"`
	CreatedAt time.Time
}

type User struct {
	gorm.Model
	Username string     `gorm:"uniqueIndex;not null"`
	Password string     `gorm:"not null"` // bcrypt hash, opaque to the services
	Roles    []UserRole `gorm:"foreignKey:UserID"`
}

// RoleSet returns the user's roles as a plain slice, e.g. for token claims.
func (u *User) RoleSet() []Role {
	roles := make([]Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Role)
	}
	return roles
}
