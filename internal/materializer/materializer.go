// Package materializer 负责将上传的图片字节固化为持久产物：
// 本地原图、本地缩略图或远程托管缩略图，取决于配置模式。
package materializer

import (
	"context"
	"errors"
	"fmt"

	"github.com/albumix/albumix/internal/materializer/fsstore"
	"github.com/albumix/albumix/internal/materializer/remotehost"
)

// 固化模式
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
	ModeHybrid = "hybrid"
)

// ErrMaterialize 固化失败
var ErrMaterialize = errors.New("failed to materialize photo")

// ThumbnailPrefix 本地缩略图文件名前缀
const ThumbnailPrefix = "thumb_"

// Result 固化产物引用，持久化到照片元数据
type Result struct {
	StoredFilename     string
	ThumbnailFilename  string
	RemotePublicID     string
	RemoteThumbnailURL string
}

// Artifacts 需要清理的产物引用
type Artifacts struct {
	StoredFilename    string
	ThumbnailFilename string
	RemotePublicID    string
}

// Materializer 照片固化接口。调用方不感知具体模式。
type Materializer interface {
	// Materialize 固化原图与缩略图，返回持久引用
	Materialize(ctx context.Context, albumID uint, storedName string, contentType string, data []byte) (*Result, error)
	// Discard 尽力清理产物，聚合错误返回但不保证全部成功
	Discard(ctx context.Context, albumID uint, refs Artifacts) error
	// Health 检查底层存储可用性
	Health(ctx context.Context) error
	// Mode 返回固化模式名称
	Mode() string
}

// Config 固化器装配参数
type Config struct {
	Mode           string
	Store          *fsstore.Store
	Host           remotehost.Host
	ThumbnailWidth int
	MaxConcurrent  int
}

// New 根据模式创建固化器
func New(cfg Config) (Materializer, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("artifact store is required")
	}

	resizer := NewResizer(cfg.ThumbnailWidth, cfg.MaxConcurrent)

	switch cfg.Mode {
	case ModeLocal, "":
		return &localMaterializer{store: cfg.Store, resizer: resizer}, nil
	case ModeRemote:
		if cfg.Host == nil {
			return nil, fmt.Errorf("remote host is required for mode %q", cfg.Mode)
		}
		return &remoteMaterializer{store: cfg.Store, host: cfg.Host, resizer: resizer}, nil
	case ModeHybrid:
		if cfg.Host == nil {
			return nil, fmt.Errorf("remote host is required for mode %q", cfg.Mode)
		}
		return &hybridMaterializer{
			local:  &localMaterializer{store: cfg.Store, resizer: resizer},
			remote: &remoteMaterializer{store: cfg.Store, host: cfg.Host, resizer: resizer},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported materializer mode: %s", cfg.Mode)
	}
}

// remoteThumbnailKey 远程缩略图对象键，与本地布局保持一致
func remoteThumbnailKey(albumID uint, storedName string) string {
	return fmt.Sprintf("%d/%s/%s%s", albumID, fsstore.FolderThumbnails, ThumbnailPrefix, storedName)
}
