// Package remotehost 远程缩略图托管。上传缩略图字节到外部对象存储，
// 返回可直接对外访问的公开 URL。
package remotehost

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// 远程主机类型
const (
	TypeMinio  = "minio"
	TypeWebDAV = "webdav"
)

// Host 远程缩略图主机接口
type Host interface {
	// Upload 上传缩略图字节并返回远程标识和公开 URL
	Upload(ctx context.Context, key string, contentType string, data []byte) (publicID string, url string, err error)
	// Destroy 删除远程产物。产物不存在视为成功。
	Destroy(ctx context.Context, publicID string) error
	// Health 检查远程主机连通性
	Health(ctx context.Context) error
	// Name 返回主机名称
	Name() string
}

// Options 远程主机通用配置，从 config 的扁平选项 map 解码
type Options struct {
	Type      string `mapstructure:"type"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	BaseURL   string `mapstructure:"base_url"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	Prefix    string `mapstructure:"prefix"`
}

// DecodeOptions 从通用 map 解码远程主机配置
func DecodeOptions(configMap map[string]interface{}) (*Options, error) {
	opts := &Options{}
	if err := mapstructure.Decode(configMap, opts); err != nil {
		return nil, fmt.Errorf("failed to decode remote host options: %w", err)
	}

	opts.Type = strings.ToLower(strings.TrimSpace(opts.Type))
	opts.Prefix = strings.Trim(opts.Prefix, "/")

	return opts, nil
}

// New 根据配置创建远程主机
func New(configMap map[string]interface{}) (Host, error) {
	opts, err := DecodeOptions(configMap)
	if err != nil {
		return nil, err
	}

	switch opts.Type {
	case TypeMinio:
		return newMinioHost(opts)
	case TypeWebDAV:
		return newWebDAVHost(opts)
	case "":
		return nil, fmt.Errorf("remote host type is required")
	default:
		return nil, fmt.Errorf("unsupported remote host type: %s", opts.Type)
	}
}

// objectKey 生成带前缀的对象键
func objectKey(prefix, key string) string {
	key = strings.TrimLeft(key, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
