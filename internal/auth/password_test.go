package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"8 characters", "password"},
		{"with special chars", "p@ssw0rd!"},
		{"8 runes with accents", "maçãçãéé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			assert.True(t, CheckPassword(tt.password, hash))
			assert.NoError(t, ValidateHash(hash))

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, adminHashCost, cost)
		})
	}
}

func TestHashPassword_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"empty", "", ErrPasswordTooShort},
		{"seven characters", "1234567", ErrPasswordTooShort},
		{"past bcrypt limit", strings.Repeat("a", 73), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, hash)
		})
	}
}

func TestValidateHash(t *testing.T) {
	weak, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.ErrorIs(t, ValidateHash(""), ErrMalformedHash)
	assert.ErrorIs(t, ValidateHash("admin123"), ErrMalformedHash)
	assert.ErrorIs(t, ValidateHash(string(weak)), ErrWeakHash)
}

func TestCheckPassword_WrongOrBrokenHash(t *testing.T) {
	hash, err := HashPassword("Password123")
	require.NoError(t, err)

	assert.False(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("Password123", "invalid-hash"))
	assert.False(t, CheckPassword("Password123", ""))
}
