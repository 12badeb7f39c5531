package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
	ErrMalformedHash    = errors.New("admin password hash is not a bcrypt hash")
	ErrWeakHash         = errors.New("admin password hash cost is too low")
)

const (
	adminHashCost     = 12
	MinHashCost       = 10
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

// HashPassword hashes an admin password for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	switch {
	case len([]rune(password)) < minPasswordLength:
		return "", ErrPasswordTooShort
	case len(password) > maxPasswordBytes:
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), adminHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash admin password: %w", err)
	}
	return string(hash), nil
}

// ValidateHash checks a configured ADMIN_PASSWORD_HASH before it is used.
func ValidateHash(hash string) error {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if cost < MinHashCost {
		return fmt.Errorf("%w: %d, want at least %d", ErrWeakHash, cost, MinHashCost)
	}
	return nil
}

// CheckPassword reports whether password matches hash. A malformed hash never matches.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
