// internal/pkg/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/sportsplus-backend/internal/config"
)

func passwordConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{BcryptCost: 4}, // lowest cost for fast tests
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	manager := NewPasswordManager(passwordConfig())

	hash, err := manager.HashPassword("correct-horse-battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse-battery", hash)

	assert.NoError(t, manager.VerifyPassword("correct-horse-battery", hash))
	assert.Error(t, manager.VerifyPassword("wrong-password", hash))
}

func TestValidatePassword(t *testing.T) {
	manager := NewPasswordManager(passwordConfig())

	assert.NoError(t, manager.ValidatePassword("12345678"))
	assert.Error(t, manager.ValidatePassword("short"))
	assert.Error(t, manager.ValidatePassword(strings.Repeat("x", 73)))
}
