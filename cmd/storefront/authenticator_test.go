package main

import (
	"testing"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewAuthenticator(t *testing.T) {
	log := zerolog.Nop()

	tests := []struct {
		name string
		cfg  config.AdminConfig
		want any
	}{
		{"password", config.AdminConfig{Mode: config.AdminAuthPassword, Username: "admin", PasswordHash: "$2a$04$x"}, &auth.PasswordAuthenticator{}},
		{"password without hash", config.AdminConfig{Mode: config.AdminAuthPassword, Username: "admin"}, auth.Disabled{}},
		{"token", config.AdminConfig{Mode: config.AdminAuthToken, TokenSecret: "0123456789abcdef0123456789abcdef"}, &auth.TokenAuthenticator{}},
		{"disabled", config.AdminConfig{Mode: config.AdminAuthDisabled}, auth.Disabled{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, newAuthenticator(tt.cfg, log))
		})
	}
}
