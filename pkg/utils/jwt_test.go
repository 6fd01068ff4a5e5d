package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, expiresAt, err := m.GenerateToken("S001", "owner@shop.in", "owner")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "S001", claims.StaffID)
	assert.Equal(t, "owner@shop.in", claims.Email)
	assert.Equal(t, "owner", claims.Role)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTManager("one", time.Hour).GenerateToken("S001", "a@b.c", "owner")
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := m.GenerateToken("S001", "a@b.c", "owner")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("admin123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
