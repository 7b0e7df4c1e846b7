package models

import (
	"time"

	"gorm.io/gorm"
)

// Device 登录设备，绑定 refresh token
type Device struct {
	gorm.Model
	AccountID    uint      `gorm:"index;not null"`
	Account      Account   `gorm:"foreignKey:AccountID"`
	RefreshToken string    `gorm:"uniqueIndex;not null"`
	DeviceID     string    `gorm:"uniqueIndex:idx_active_device,where:deleted_at IS NULL"`
	Expiry       time.Time `gorm:"not null"`
}
