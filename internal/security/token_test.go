package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentivo-backend/internal/domain"
)

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, err := tm.GenerateAccessToken("user-1", "admin@test.com", domain.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@test.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("other-secret", 60)

	token, err := tm.GenerateAccessToken("user-1", "user@test.com", domain.RoleUser)
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -1)

	token, err := tm.GenerateAccessToken("user-1", "user@test.com", domain.RoleUser)
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	_, err := tm.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
