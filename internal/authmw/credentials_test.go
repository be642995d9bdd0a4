package authmw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	digest, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", digest)

	assert.True(t, CheckPassword(digest, "password123"))
	assert.False(t, CheckPassword(digest, "password124"))
	assert.False(t, CheckPassword(digest, ""))
	assert.False(t, CheckPassword("not-a-digest", "password123"))
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("secret1")
	require.NoError(t, err)
	b, err := HashPassword("secret1")
	require.NoError(t, err)

	// same plaintext, different salts
	assert.NotEqual(t, a, b)
	assert.True(t, CheckPassword(a, "secret1"))
	assert.True(t, CheckPassword(b, "secret1"))
}
