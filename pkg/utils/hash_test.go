package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("StrongPass1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "StrongPass1", digest)

	assert.True(t, CheckPasswordHash("StrongPass1", digest))
	assert.False(t, CheckPasswordHash("wrong-password", digest))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("StrongPass1")
	require.NoError(t, err)
	second, err := HashPassword("StrongPass1")
	require.NoError(t, err)

	// bcrypt salts per call
	assert.NotEqual(t, first, second)
}
