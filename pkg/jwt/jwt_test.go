package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(Config{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-123", "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestManager_RefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken("user-123", "ana@example.com")
	require.NoError(t, err)

	claims, err := m.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestManager_SecretsAreNotInterchangeable(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken("user-123", "ana@example.com")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("user-123", "ana@example.com")
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_TamperedTokenRejected(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-123", "ana@example.com")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = m.VerifyAccessToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_ExpiredTokenRejected(t *testing.T) {
	m := NewManager(Config{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: -time.Minute,
	})

	token, err := m.GenerateAccessToken("user-123", "ana@example.com")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_GarbageRejected(t *testing.T) {
	m := newTestManager()

	_, err := m.VerifyAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyRefreshToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
