package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func quickHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ============================================
// PasswordAuthenticator Tests
// ============================================

func TestPasswordAuthenticator(t *testing.T) {
	a := NewPasswordAuthenticator("admin", quickHash(t, "admin123"))
	ctx := context.Background()

	tests := []struct {
		name  string
		creds Credentials
		ok    bool
	}{
		{"exact pair", Credentials{"admin", "admin123"}, true},
		{"wrong password", Credentials{"admin", "admin124"}, false},
		{"wrong username", Credentials{"root", "admin123"}, false},
		{"username case", Credentials{"Admin", "admin123"}, false},
		{"trailing space", Credentials{"admin ", "admin123"}, false},
		{"empty", Credentials{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Authenticate(ctx, tt.creds)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			}
		})
	}
}

func TestPasswordAuthenticator_NoHashConfigured(t *testing.T) {
	a := NewPasswordAuthenticator("admin", "")

	err := a.Authenticate(context.Background(), Credentials{"admin", "admin123"})

	assert.ErrorIs(t, err, ErrAdminDisabled)
}

// ============================================
// TokenAuthenticator Tests
// ============================================

func TestTokenAuthenticator(t *testing.T) {
	tokens := NewTokenService(testSecret)
	a := NewTokenAuthenticator(tokens)
	ctx := context.Background()

	adminToken, err := tokens.Issue("u-1", "chefe@example.com", RoleAdmin, time.Minute)
	require.NoError(t, err)
	customerToken, err := tokens.Issue("u-2", "cliente@example.com", "customer", time.Minute)
	require.NoError(t, err)
	expired, err := tokens.Issue("u-1", "chefe@example.com", RoleAdmin, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		creds Credentials
		ok    bool
	}{
		{"by email", Credentials{"chefe@example.com", adminToken}, true},
		{"by subject", Credentials{"u-1", adminToken}, true},
		{"other user", Credentials{"cliente@example.com", adminToken}, false},
		{"not an admin", Credentials{"cliente@example.com", customerToken}, false},
		{"expired", Credentials{"chefe@example.com", expired}, false},
		{"garbage", Credentials{"chefe@example.com", "admin123"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Authenticate(ctx, tt.creds)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			}
		})
	}
}

func TestTokenAuthenticator_ExpiredIsDistinguishable(t *testing.T) {
	tokens := NewTokenService(testSecret)
	expired, err := tokens.Issue("u-1", "chefe@example.com", RoleAdmin, -time.Minute)
	require.NoError(t, err)

	err = NewTokenAuthenticator(tokens).Authenticate(context.Background(), Credentials{"u-1", expired})

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestDisabled(t *testing.T) {
	err := Disabled{}.Authenticate(context.Background(), Credentials{"admin", "admin123"})

	assert.ErrorIs(t, err, ErrAdminDisabled)
}
