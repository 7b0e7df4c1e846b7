package remotehost

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/studio-b12/gowebdav"
)

type webdavHost struct {
	client   *gowebdav.Client
	baseURL  string
	rootPath string
}

// newWebDAVHost 创建 WebDAV 远程主机
func newWebDAVHost(opts *Options) (*webdavHost, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("webdav endpoint is required")
	}

	rootPath := opts.Prefix
	if rootPath != "" {
		rootPath = "/" + strings.Trim(rootPath, "/")
	}

	client := gowebdav.NewClient(opts.Endpoint, opts.Username, opts.Password)

	// 验证连接
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := testConnection(ctx, client, rootPath); err != nil {
		return nil, fmt.Errorf("webdav connection test failed: %w", err)
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(opts.Endpoint, "/")
	}

	return &webdavHost{
		client:   client,
		baseURL:  baseURL,
		rootPath: rootPath,
	}, nil
}

// testConnection 测试 WebDAV 连接
func testConnection(ctx context.Context, client *gowebdav.Client, rootPath string) error {
	done := make(chan error, 1)
	go func() {
		_, err := client.ReadDir(rootPath)
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil && gowebdav.IsErrNotFound(err) {
			// 根目录不存在时按需创建
			return client.MkdirAll(rootPath, os.FileMode(0755))
		}
		return err
	}
}

// fullPath 生成完整的 WebDAV 路径
func (h *webdavHost) fullPath(key string) string {
	key = strings.TrimLeft(key, "/")
	if h.rootPath != "" {
		return h.rootPath + "/" + key
	}
	return "/" + key
}

// ensureParentDir 递归创建父目录
func (h *webdavHost) ensureParentDir(ctx context.Context, fullPath string) error {
	parentDir := path.Dir(fullPath)
	if parentDir == "/" || parentDir == "." {
		return nil
	}

	parts := strings.Split(strings.Trim(parentDir, "/"), "/")
	currentPath := ""

	for _, part := range parts {
		if part == "" {
			continue
		}
		currentPath = currentPath + "/" + part

		done := make(chan error, 1)
		go func(p string) {
			done <- h.client.Mkdir(p, os.FileMode(0755))
		}(currentPath)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-done:
			if err != nil && !isCollectionExistsError(err) {
				return fmt.Errorf("failed to create directory %s: %w", currentPath, err)
			}
		}
	}

	return nil
}

// isCollectionExistsError 判断是否为目录已存在的错误
func isCollectionExistsError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	for _, s := range []string{"already exists", "conflict", "Conflict", "409", "Method Not Allowed", "405"} {
		if strings.Contains(errStr, s) {
			return true
		}
	}
	return false
}

// Upload 上传缩略图字节到 WebDAV
func (h *webdavHost) Upload(ctx context.Context, key string, contentType string, data []byte) (string, string, error) {
	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	default:
	}

	fullPath := h.fullPath(key)

	if err := h.ensureParentDir(ctx, fullPath); err != nil {
		return "", "", fmt.Errorf("failed to ensure parent directory for %s: %w", key, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- h.client.Write(fullPath, data, 0644)
	}()

	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case err := <-done:
		if err != nil {
			return "", "", fmt.Errorf("failed to write file %s: %w", key, err)
		}
		return fullPath, h.baseURL + fullPath, nil
	}
}

// Destroy 删除远程缩略图。产物不存在视为成功。
func (h *webdavHost) Destroy(ctx context.Context, publicID string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	done := make(chan error, 1)
	go func() {
		done <- h.client.Remove(publicID)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil && !gowebdav.IsErrNotFound(err) {
			return fmt.Errorf("failed to remove remote file %s: %w", publicID, err)
		}
		return nil
	}
}

// Health 检查存储健康状态
func (h *webdavHost) Health(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	done := make(chan error, 1)
	go func() {
		_, err := h.client.ReadDir(h.rootPath)
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// Name 返回主机名称
func (h *webdavHost) Name() string {
	return fmt.Sprintf("webdav:%s%s", h.baseURL, h.rootPath)
}
