package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username          string `gorm:"default:''"`
	Email             string `gorm:"unique;not null" json:"email"`
	Password          string `gorm:"not null" json:"-"`
	Role              string `gorm:"default:'student'" json:"role"` // student, instructor, admin
	Type              string `gorm:"default:''" json:"type"`
	Organisation      string `gorm:"default:''" json:"organisation"`
	IsVerified        bool   `gorm:"default:false" json:"is_verified"`
	VerificationToken string `json:"-"`

	// Google OAuth profile, empty for password accounts
	GoogleID           string `gorm:"default:''" json:"-"`
	GoogleName         string `gorm:"default:''" json:"google_name,omitempty"`
	GoogleProfileImage string `gorm:"default:''" json:"google_profile_image,omitempty"`

	LastLogin *time.Time `json:"last_login"`
	IsDeleted bool       `gorm:"default:false" json:"-"`
}
