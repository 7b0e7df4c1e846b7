package remotehost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试通用选项 map 解码
func TestDecodeOptions(t *testing.T) {
	opts, err := DecodeOptions(map[string]interface{}{
		"type":       "MinIO",
		"endpoint":   "minio.local:9000",
		"access_key": "ak",
		"secret_key": "sk",
		"bucket":     "thumbs",
		"use_ssl":    true,
		"prefix":     "/albumix/",
	})
	require.NoError(t, err)

	assert.Equal(t, TypeMinio, opts.Type)
	assert.Equal(t, "minio.local:9000", opts.Endpoint)
	assert.Equal(t, "thumbs", opts.Bucket)
	assert.True(t, opts.UseSSL)
	// 前缀去掉首尾斜杠
	assert.Equal(t, "albumix", opts.Prefix)
}

func TestDecodeOptions_InvalidMap(t *testing.T) {
	_, err := DecodeOptions(map[string]interface{}{
		"use_ssl": "not-a-bool",
	})
	assert.Error(t, err)
}

// 测试工厂对未知类型的拒绝
func TestNew_UnsupportedType(t *testing.T) {
	_, err := New(map[string]interface{}{"type": "cloudinary"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported remote host type")

	_, err = New(map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote host type is required")
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "a/b.jpg", objectKey("", "a/b.jpg"))
	assert.Equal(t, "albumix/a/b.jpg", objectKey("albumix", "/a/b.jpg"))
}

func TestIsCollectionExistsError(t *testing.T) {
	assert.False(t, isCollectionExistsError(nil))
	assert.False(t, isCollectionExistsError(errors.New("permission denied")))
	assert.True(t, isCollectionExistsError(errors.New("409 Conflict")))
	assert.True(t, isCollectionExistsError(errors.New("directory already exists")))
	assert.True(t, isCollectionExistsError(errors.New("405 Method Not Allowed")))
}
