package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.GenerateToken(42, "reader", "reader@example.com")
	require.NoError(t, err)

	claims, err := manager.VerifyToken(token)
	require.NoError(t, err)

	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "reader@example.com", claims.Email)
	// jti用于登出吊销，必须存在
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := manager.GenerateToken(1, "u", "u@example.com")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(1, "u", "u@example.com")
	require.NoError(t, err)

	_, err = manager.VerifyToken(token)
	assert.Error(t, err)
}
