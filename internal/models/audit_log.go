package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:120;index" json:"username"`
	Action    string    `gorm:"size:50;not null" json:"action"` // e.g. "LOGIN", "UPDATE_CONFIG", "IMPORT_CONFIG"
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
