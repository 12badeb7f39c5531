package main

import (
	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/config"
	"github.com/rs/zerolog"
)

// newAuthenticator picks the admin gate for the configured mode.
func newAuthenticator(cfg config.AdminConfig, log zerolog.Logger) auth.Authenticator {
	switch cfg.Mode {
	case config.AdminAuthToken:
		return auth.NewTokenAuthenticator(auth.NewTokenService(cfg.TokenSecret))
	case config.AdminAuthPassword:
		if cfg.PasswordHash == "" {
			log.Warn().Msg("ADMIN_PASSWORD_HASH is empty, admin panel disabled")
			return auth.Disabled{}
		}
		return auth.NewPasswordAuthenticator(cfg.Username, cfg.PasswordHash)
	default:
		return auth.Disabled{}
	}
}
