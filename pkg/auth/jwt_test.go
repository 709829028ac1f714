package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	token, err := svc.GenerateAccessToken("owner-1", "demo@healthvault.local")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.Subject)
	assert.Equal(t, "demo@healthvault.local", claims.Email)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenType(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	token, err := svc.GenerateRefreshToken("owner-1", "demo@healthvault.local")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, 24*time.Hour)

	token, err := svc.GenerateAccessToken("owner-1", "demo@healthvault.local")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 15*time.Minute, 24*time.Hour)
	verifier := NewJWTService("secret-b", 15*time.Minute, 24*time.Hour)

	token, err := issuer.GenerateAccessToken("owner-1", "demo@healthvault.local")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
