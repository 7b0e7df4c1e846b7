package models

import "gorm.io/gorm"

// Photo 照片元数据。AlbumID 创建后不再变更。
// StoredFilename 为服务端生成的存储名（随机前缀 + 原始文件名），
// ThumbnailFilename 仅在本地缩略图模式下存在，
// RemotePublicID / RemoteThumbnailURL 仅在远程模式下存在。
type Photo struct {
	gorm.Model
	AlbumID          uint   `gorm:"not null;index"`
	Name             string `gorm:"type:varchar(100);not null"`
	Description      string `gorm:"type:varchar(255)"`
	OriginalFilename string `gorm:"not null"`
	StoredFilename   string `gorm:"not null"`

	ThumbnailFilename  string
	RemotePublicID     string
	RemoteThumbnailURL string
}

// HasRemoteThumbnail reports whether a remote materialization strategy
// produced a reference for this photo.
func (p *Photo) HasRemoteThumbnail() bool {
	return p.RemotePublicID != "" && p.RemoteThumbnailURL != ""
}

// HasLocalThumbnail reports whether a local thumbnail artifact exists.
func (p *Photo) HasLocalThumbnail() bool {
	return p.ThumbnailFilename != ""
}
