package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "asha", "SELLER")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "asha", claims.Username)
	assert.Equal(t, "SELLER", claims.Role)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestValidateToken_Tampered(t *testing.T) {
	token, err := GenerateToken(1, "asha", "BUYER")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "secret123"))
}
