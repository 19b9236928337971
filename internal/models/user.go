package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values. Checks are exact-match: admin does not imply staff.
const (
	RoleUser  = "user"
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleStaff || role == RoleAdmin
}

type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"not null;size:100" json:"name"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Birthday       *time.Time     `json:"birthday,omitempty"`
	Role           string         `gorm:"size:20;default:'user'" json:"role"`
	Verified       bool           `gorm:"default:false" json:"verified"`
	ResetTokenHash *string        `gorm:"size:64" json:"-"`
	ResetExpiresAt *time.Time     `json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
