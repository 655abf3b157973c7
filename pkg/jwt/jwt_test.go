package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewManager("test-secret", 60)

	token, err := manager.GenerateToken("user-123", "jane@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", 60).GenerateToken("user-123", "jane@example.com", "user")
	require.NoError(t, err)

	_, err = NewManager("secret-b", 60).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTamperedToken(t *testing.T) {
	manager := NewManager("test-secret", 60)

	token, err := manager.GenerateToken("user-123", "jane@example.com", "user")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -1)

	token, err := manager.GenerateToken("user-123", "jane@example.com", "user")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	manager := NewManager("test-secret", 60)

	_, err := manager.ValidateToken("not.a.token")
	assert.Error(t, err)
}
