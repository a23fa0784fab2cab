package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("652f1f77bcf86cd799439011", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "652f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenMissingExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// A validly-signed token without an exp claim must be rejected, not
	// panic on the nil expiry.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "652f1f77bcf86cd799439011", Username: "alice"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken("652f1f77bcf86cd799439011", "alice")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
