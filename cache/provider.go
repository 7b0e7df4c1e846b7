package cache

import (
	"context"
	"time"
)

// Provider 缓存后端抽象，相册列表与缩略图缓存都通过它访问
type Provider interface {
	// Set 写入缓存项
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// Get 读取缓存项到 dest，未命中返回 ErrCacheMiss
	Get(ctx context.Context, key string, dest interface{}) error

	// Delete 删除缓存项
	Delete(ctx context.Context, key string) error

	// Exists 判断缓存项是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// Close 释放后端连接
	Close() error

	// Name 返回后端名称
	Name() string
}

// ErrCacheMiss 缓存未命中错误
var ErrCacheMiss = &cacheMissError{}

type cacheMissError struct{}

func (e *cacheMissError) Error() string {
	return "cache miss"
}

// IsCacheMiss 判断是否为缓存未命中错误
func IsCacheMiss(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*cacheMissError)
	return ok
}
