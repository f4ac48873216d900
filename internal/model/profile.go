package model

import (
	"time"

	"gorm.io/gorm"
)

// Profile mirrors the identity provider's user record and carries the role
// flag. The auth middleware resolves roles from here, never from the token.
type Profile struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	FullName  string         `json:"full_name,omitempty"`
	IsAdmin   bool           `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
