package models

import (
	"time"
)

// AdminUser holds the credentials allowed to edit profile configuration.
type AdminUser struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Username     string     `gorm:"unique;not null;size:120" json:"username"`
	PasswordHash string     `gorm:"not null;size:255" json:"-"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
