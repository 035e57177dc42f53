package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizdeck/quizdeck-backend/internal/config"
)

func testAuthService() *AuthService {
	return NewAuthService(&config.Config{BcryptCost: bcrypt.MinCost}, nil, nil, nil)
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := testAuthService()

	hash, err := svc.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, svc.CheckPassword(hash, "secret1"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.CheckPassword("not-a-hash", "secret1"), ErrInvalidCredentials)
}

func TestGenerateToken(t *testing.T) {
	a, err := generateToken()
	require.NoError(t, err)
	b, err := generateToken()
	require.NoError(t, err)

	// 32 random bytes, hex encoded.
	assert.Len(t, a, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", a)
	assert.NotEqual(t, a, b)
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "abc123", StripBearer("Bearer abc123"))
	assert.Equal(t, "abc123", StripBearer("bearer abc123"))
	assert.Equal(t, "abc123", StripBearer("  Bearer abc123  "))
	assert.Equal(t, "abc123", StripBearer("abc123"))
	assert.Equal(t, "", StripBearer(""))
	assert.Equal(t, "", StripBearer("Bearer"))
	assert.Equal(t, "", StripBearer("Bearer "))
	assert.Equal(t, "", StripBearer("  bearer  "))
}
