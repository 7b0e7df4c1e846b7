// Package fsstore 本地文件产物存储。
// 目录布局: <upload-root>/<albumID>/{photos|thumbnails}/<storedName>
package fsstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// 产物目录
const (
	FolderPhotos     = "photos"
	FolderThumbnails = "thumbnails"
)

// Store 本地文件存储实现
type Store struct {
	absBasePath string
}

// NewStore 创建本地存储
func NewStore(basePath string) (*Store, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload root '%s': %w", absPath, err)
	}

	return &Store{
		absBasePath: absPath + string(os.PathSeparator),
	}, nil
}

// BasePath 返回存储的基础路径
func (s *Store) BasePath() string {
	return s.absBasePath
}

// resolve 计算产物的绝对路径并校验未越界
func (s *Store) resolve(albumID uint, folder, name string) (string, error) {
	if !IsValidName(name) {
		return "", fmt.Errorf("invalid artifact name: %s", name)
	}
	if folder != FolderPhotos && folder != FolderThumbnails {
		return "", fmt.Errorf("invalid artifact folder: %s", folder)
	}

	fullPath := filepath.Join(s.absBasePath, strconv.FormatUint(uint64(albumID), 10), folder, name)

	// 确保最终路径在 basePath 下
	if !strings.HasPrefix(fullPath, s.absBasePath) {
		return "", fmt.Errorf("invalid artifact path, potential directory traversal: %s", name)
	}
	return fullPath, nil
}

// Save 保存产物到相册命名空间
func (s *Store) Save(ctx context.Context, albumID uint, folder, name string, file io.Reader) error {
	dstPath, err := s.resolve(albumID, folder, name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create album directory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file '%s': %w", dstPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to copy file content to '%s': %w", dstPath, err)
	}

	return nil
}

// Open 打开产物用于读取
func (s *Store) Open(ctx context.Context, albumID uint, folder, name string) (*os.File, error) {
	fullPath, err := s.resolve(albumID, folder, name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact not found: %s: %w", name, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to open artifact '%s': %w", name, err)
	}

	return file, nil
}

// Delete 删除产物。产物不存在视为成功（并发删除容忍第二次为空操作）。
func (s *Store) Delete(ctx context.Context, albumID uint, folder, name string) error {
	fullPath, err := s.resolve(albumID, folder, name)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete artifact '%s': %w", fullPath, err)
	}

	return nil
}

// Exists 检查产物是否存在
func (s *Store) Exists(ctx context.Context, albumID uint, folder, name string) (bool, error) {
	fullPath, err := s.resolve(albumID, folder, name)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RemoveAlbum 删除整个相册命名空间（相册级联删除后的兜底清理）
func (s *Store) RemoveAlbum(ctx context.Context, albumID uint) error {
	dir := filepath.Join(s.absBasePath, strconv.FormatUint(uint64(albumID), 10))
	if !strings.HasPrefix(dir, s.absBasePath) {
		return fmt.Errorf("invalid album directory: %d", albumID)
	}
	return os.RemoveAll(dir)
}

// Health 检查存储健康状态
func (s *Store) Health(ctx context.Context) error {
	_, err := os.ReadDir(s.absBasePath)
	return err
}

// IsValidName 校验产物名是否合法。存储名包含随机前缀和用户原始文件名，
// 所以只拒绝路径穿越相关的形式，不限制字符集。
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	if filepath.IsAbs(name) {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	return true
}
