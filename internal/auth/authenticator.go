// Package auth gates the admin panel. No authenticator talks to the network:
// credentials are checked against a configured bcrypt hash, or against an
// access token previously issued by the auth service.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrAdminDisabled      = errors.New("admin access is disabled")
)

type Credentials struct {
	Username string
	Password string
}

type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) error
}

// PasswordAuthenticator accepts one username whose password matches a bcrypt hash.
type PasswordAuthenticator struct {
	username     string
	passwordHash string
}

func NewPasswordAuthenticator(username, passwordHash string) *PasswordAuthenticator {
	return &PasswordAuthenticator{username: username, passwordHash: passwordHash}
}

func (a *PasswordAuthenticator) Authenticate(ctx context.Context, creds Credentials) error {
	if a.passwordHash == "" {
		return ErrAdminDisabled
	}
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(a.username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passOK := CheckPassword(creds.Password, a.passwordHash)
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// TokenAuthenticator takes the password field as an access token. The token
// must be valid, carry the admin role and belong to the given username.
type TokenAuthenticator struct {
	tokens *TokenService
}

func NewTokenAuthenticator(tokens *TokenService) *TokenAuthenticator {
	return &TokenAuthenticator{tokens: tokens}
}

func (a *TokenAuthenticator) Authenticate(ctx context.Context, creds Credentials) error {
	claims, err := a.tokens.Validate(creds.Password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if claims.Role != RoleAdmin {
		return fmt.Errorf("%w: role %q", ErrInvalidCredentials, claims.Role)
	}
	if creds.Username != claims.Email && creds.Username != claims.Subject {
		return fmt.Errorf("%w: token belongs to another user", ErrInvalidCredentials)
	}
	return nil
}

// Disabled rejects every attempt.
type Disabled struct{}

func (Disabled) Authenticate(ctx context.Context, creds Credentials) error {
	return ErrAdminDisabled
}
