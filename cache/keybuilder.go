package cache

import (
	"fmt"
	"strings"
)

// KeyBuilder 缓存键构建器
type KeyBuilder struct {
	prefix string
	sep    string
}

// NewKeyBuilder 创建新的键构建器
func NewKeyBuilder(prefix string) *KeyBuilder {
	return &KeyBuilder{
		prefix: prefix,
		sep:    ":",
	}
}

// Build 构建缓存键
func (kb *KeyBuilder) Build(parts ...string) string {
	if len(parts) == 0 {
		return kb.prefix
	}
	return kb.prefix + kb.sep + strings.Join(parts, kb.sep)
}

// BuildID 构建带 ID 的缓存键
func (kb *KeyBuilder) BuildID(id interface{}) string {
	return fmt.Sprintf("%s%s%v", kb.prefix, kb.sep, id)
}

// 预定义的 KeyBuilder 实例
var (
	// AlbumList 账号相册列表缓存
	AlbumList = NewKeyBuilder("album_list")

	// Thumbnail 缩略图字节缓存
	Thumbnail = NewKeyBuilder("thumbnail")
)

// ThumbnailKey 缩略图缓存键: thumbnail:<albumID>:<photoID>
func ThumbnailKey(albumID, photoID uint) string {
	return Thumbnail.Build(fmt.Sprintf("%d", albumID), fmt.Sprintf("%d", photoID))
}

// AlbumListKey 相册列表缓存键: album_list:<accountID>
func AlbumListKey(accountID uint) string {
	return AlbumList.BuildID(accountID)
}
