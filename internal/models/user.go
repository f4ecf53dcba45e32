package models

import (
	"time"

	"athar/internal/domain"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Phone        string    `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Name         string    `gorm:"size:100;not null;index" json:"name"`
	Email        *string   `gorm:"uniqueIndex;size:255" json:"email"` // nil when unset (avoids duplicate '' on unique index)
	Bio          string    `gorm:"type:text" json:"bio"`
	ProfileImage string    `gorm:"size:512" json:"profile_image"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	Role         string    `gorm:"size:20;not null;default:'user';index" json:"role"`
	IsBanned     bool      `gorm:"not null;default:false;index" json:"is_banned"`
	BanReason    *string   `gorm:"type:text" json:"ban_reason,omitempty"`
	PasswordHash *string   `gorm:"column:password;size:255" json:"-"` // nil for OTP-only accounts
	PushToken    string    `gorm:"size:512" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsStaff() bool     { return domain.IsStaff(u.Role) }
func (u *User) IsAdmin() bool     { return u.Role == domain.RoleAdmin }
func (u *User) HasPassword() bool { return u.PasswordHash != nil && *u.PasswordHash != "" }
