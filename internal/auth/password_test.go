package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super_secret_1")
	require.NoError(t, err)
	assert.NotEqual(t, "super_secret_1", hash)

	assert.True(t, CheckPasswordHash("super_secret_1", hash))
	assert.False(t, CheckPasswordHash("wrong_password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(""))
}

func TestGenerateRandomToken(t *testing.T) {
	a := GenerateRandomToken()
	b := GenerateRandomToken()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
