package model

import (
	"time"
)

// Role is the coarse permission class of a user
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleTenant Role = "tenant"
	RoleGuest  Role = "guest"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleTenant, RoleGuest:
		return true
	}
	return false
}

// User represents an identity that may own properties or rent them
type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string  `gorm:"type:varchar(254);uniqueIndex;not null"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	FirstName    string  `gorm:"type:varchar(150)"`
	LastName     string  `gorm:"type:varchar(150)"`
	PhoneNumber  *string `gorm:"type:varchar(20)"`
	Role         Role    `gorm:"type:varchar(10);not null;default:'guest'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Property{},
		&Lease{},
		&Payment{},
	}
}
