package models

import "gorm.io/gorm"

// Album 相册。AccountID 创建后不再变更（所有权不可转移）。
type Album struct {
	gorm.Model
	AccountID   uint   `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(100);not null;index"`
	Description string `gorm:"type:varchar(255)"`

	Photos []*Photo `gorm:"foreignKey:AlbumID"`
}
