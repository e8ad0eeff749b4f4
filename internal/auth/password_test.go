package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hashed)

	// Hashing is salted, so two hashes of the same input differ.
	again, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again)
}

func TestCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPassword("secret1", hashed))
	assert.False(t, CheckPassword("wrong", hashed))
	assert.False(t, CheckPassword("secret1", "not-a-hash"))
}
