package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("S3cret!pass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("S3cret!pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "user@example.com", "Coordinator", "test-secret", time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "Coordinator", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Empty(t, claims.ID, "access tokens carry no jti")
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, jti, expiresAt, err := GenerateRefreshToken(7, "user@example.com", "Patient", "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, jti)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, jti, claims.ID)
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	t.Run("Wrong Secret", func(t *testing.T) {
		token, err := GenerateAccessToken(1, "a@b.c", "Patient", "secret-a", time.Minute)
		require.NoError(t, err)

		_, err = ParseToken(token, "secret-b")
		assert.Error(t, err)
	})

	t.Run("Expired Token", func(t *testing.T) {
		token, err := GenerateAccessToken(1, "a@b.c", "Patient", "test-secret", -time.Minute)
		require.NoError(t, err)

		_, err = ParseToken(token, "test-secret")
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseToken("not.a.token", "test-secret")
		assert.Error(t, err)
	})
}

func TestRefreshLockKey(t *testing.T) {
	keyA := RefreshLockKey("credential-a")
	keyB := RefreshLockKey("credential-b")

	assert.True(t, strings.HasPrefix(keyA, "refresh_lock:"))
	assert.Len(t, strings.TrimPrefix(keyA, "refresh_lock:"), 32, "16 bytes of the digest as hex")
	assert.NotEqual(t, keyA, keyB)
	assert.Equal(t, keyA, RefreshLockKey("credential-a"), "same credential derives the same key")
}

func TestAnonymousConsentID(t *testing.T) {
	now := time.Now()
	id := AnonymousConsentID("203.0.113.7", "Mozilla/5.0", now)

	assert.Len(t, id, 32)
	assert.NotContains(t, id, "203.0.113.7", "the raw IP never appears in the identifier")
	assert.NotEqual(t, id, AnonymousConsentID("203.0.113.7", "Mozilla/5.0", now.Add(time.Nanosecond)))
}

func TestRandomPassword(t *testing.T) {
	first := RandomPassword()
	second := RandomPassword()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
