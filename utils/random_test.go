package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(32)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	other, err := GenerateRandomToken(32)
	assert.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestRandomAlphanumeric(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := RandomAlphanumeric(10)
		assert.NoError(t, err)
		assert.Len(t, s, 10)
		for _, r := range s {
			ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
			assert.True(t, ok, "unexpected rune %q", r)
		}
		assert.False(t, seen[s], "duplicate token %q after %d draws", s, i)
		seen[s] = true
	}
}

func TestRandomAlphanumeric_ZeroLength(t *testing.T) {
	s, err := RandomAlphanumeric(0)
	assert.NoError(t, err)
	assert.Empty(t, s)
}
