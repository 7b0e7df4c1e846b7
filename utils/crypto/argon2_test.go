package cryptopackage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateFromPassword_Success 测试密码哈希生成成功
func TestGenerateFromPassword_Success(t *testing.T) {
	password := "mysecretpassword123"

	hash, err := GenerateFromPassword(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.Contains(t, hash, "$v=")
	assert.Contains(t, hash, "$m=")
	assert.Contains(t, hash, ",t=")
	assert.Contains(t, hash, ",p=")
}

// TestGenerateFromPassword_DifferentHashes 相同密码产生不同哈希（盐值不同）
func TestGenerateFromPassword_DifferentHashes(t *testing.T) {
	password := "samepassword123"

	hash1, err := GenerateFromPassword(password)
	require.NoError(t, err)

	hash2, err := GenerateFromPassword(password)
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

// TestComparePasswordAndHash_Success 测试密码验证成功
func TestComparePasswordAndHash_Success(t *testing.T) {
	password := "correctpassword123"

	hash, err := GenerateFromPassword(password)
	require.NoError(t, err)

	match, err := ComparePasswordAndHash(password, hash)
	require.NoError(t, err)
	assert.True(t, match)
}

// TestComparePasswordAndHash_WrongPassword 测试错误密码
func TestComparePasswordAndHash_WrongPassword(t *testing.T) {
	hash, err := GenerateFromPassword("correctpassword123")
	require.NoError(t, err)

	match, err := ComparePasswordAndHash("wrongpassword123", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

// TestComparePasswordAndHash_InvalidFormat 测试非法哈希格式
func TestComparePasswordAndHash_InvalidFormat(t *testing.T) {
	tests := []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=65536,t=2,p=4$salt$hash",
		"$argon2id$v=19$m=65536",
	}

	for _, encoded := range tests {
		_, err := ComparePasswordAndHash("password", encoded)
		assert.Error(t, err, "expected error for %q", encoded)
	}
}
