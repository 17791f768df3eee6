package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("senha123")
	require.NoError(t, err)
	assert.NotEqual(t, "senha123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	again, err := HashPassword("senha123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salt must differ per hash")

	assert.True(t, CompareHashAndPassword(hash, "senha123"))
	assert.False(t, CompareHashAndPassword(hash, "senha124"))
}

func TestCompareMalformedHash(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.False(t, CompareHashAndPassword("", "x"))
		assert.False(t, CompareHashAndPassword("not-a-bcrypt-hash", "x"))
	})
}
