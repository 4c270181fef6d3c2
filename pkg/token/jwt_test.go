package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenService = NewService("test-signing-key", "test-issuer", time.Hour)

func Test_SignAndVerify(t *testing.T) {
	signed, err := tokenService.Sign(Claims{
		UserID:   "jane@advisers.example",
		Role:     "adviser_admin",
		Email:    "jane@advisers.example",
		MobileNo: "+254700000001",
		Names:    "Jane Wanjiru",
		Adviser: &AdviserClaims{
			Names:     "Jane Wanjiru",
			AdviserID: 42,
			KraPIN:    "A012345678Z",
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokenService.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "jane@advisers.example", claims.UserID)
	assert.Equal(t, "jane@advisers.example", claims.Subject)
	assert.Equal(t, "adviser_admin", claims.Role)
	assert.Equal(t, "test-issuer", claims.Issuer)
	require.NotNil(t, claims.Adviser)
	assert.Equal(t, int64(42), claims.Adviser.AdviserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func Test_Verify_Malformed(t *testing.T) {
	_, err := tokenService.Verify("not-a-token")
	require.ErrorIs(t, err, ErrMalformed)
}

func Test_Verify_Expired(t *testing.T) {
	expired := NewService("test-signing-key", "test-issuer", -time.Hour)

	signed, err := expired.Sign(Claims{UserID: "jane@advisers.example", Role: "admin"})
	require.NoError(t, err)

	_, err = tokenService.Verify(signed)
	require.ErrorIs(t, err, ErrExpired)
}

func Test_Verify_WrongKey(t *testing.T) {
	other := NewService("another-key", "test-issuer", time.Hour)

	signed, err := other.Sign(Claims{UserID: "jane@advisers.example", Role: "admin"})
	require.NoError(t, err)

	_, err = tokenService.Verify(signed)
	require.ErrorIs(t, err, ErrSignatureInvalid)
}
