// Package cache 提供统一的缓存抽象，支持内存 (ristretto) 和 Redis 后端。
package cache

import (
	"fmt"

	"github.com/albumix/albumix/config"
)

// NewFromConfig 根据配置创建缓存提供者
func NewFromConfig(cfg *config.Config) (Provider, error) {
	switch cfg.CacheType {
	case "memory", "":
		return NewMemory(DefaultMemoryConfig())
	case "redis":
		return NewRedis(RedisConfig{
			Address:  cfg.CacheRedisAddr,
			Password: cfg.CacheRedisPassword,
			DB:       cfg.CacheRedisDB,
		})
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}
