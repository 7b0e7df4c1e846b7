package validator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsImage_JPEG 测试JPEG图片验证
func TestIsImage_JPEG(t *testing.T) {
	// JPEG Magic Bytes: FF D8 FF
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}
	reader := bytes.NewReader(data)

	isValid, mimeType, err := IsImage(reader)
	require.NoError(t, err)
	assert.True(t, isValid)
	assert.Equal(t, "image/jpeg", mimeType)

	pos, _ := reader.Seek(0, 1)
	assert.Equal(t, int64(0), pos)
}

// TestIsImage_PNG 测试PNG图片验证
func TestIsImage_PNG(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	reader := bytes.NewReader(data)

	isValid, mimeType, err := IsImage(reader)
	require.NoError(t, err)
	assert.True(t, isValid)
	assert.Equal(t, "image/png", mimeType)
}

// TestIsImage_GIF 测试GIF图片验证
func TestIsImage_GIF(t *testing.T) {
	data := []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}
	reader := bytes.NewReader(data)

	isValid, mimeType, err := IsImage(reader)
	require.NoError(t, err)
	assert.True(t, isValid)
	assert.Equal(t, "image/gif", mimeType)
}

// TestIsImage_InvalidType 测试非图片类型
func TestIsImage_InvalidType(t *testing.T) {
	reader := strings.NewReader("this is a plain text file, not an image")

	isValid, mimeType, err := IsImage(reader)
	require.NoError(t, err)
	assert.False(t, isValid)
	assert.Contains(t, mimeType, "text/plain")
}

// TestIsImage_Empty 空流不报错
func TestIsImage_Empty(t *testing.T) {
	reader := bytes.NewReader(nil)

	isValid, _, err := IsImage(reader)
	require.NoError(t, err)
	assert.False(t, isValid)
}

func TestIsImageContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"image/png", true},
		{"image/svg+xml", true},
		{"application/pdf", false},
		{"text/html", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsImageContentType(tt.contentType), tt.contentType)
	}
}
