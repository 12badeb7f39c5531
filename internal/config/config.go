// Package config loads the storefront settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/example/storefront/internal/auth"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	AdminAuthPassword = "password"
	AdminAuthToken    = "token"
	AdminAuthDisabled = "disabled"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Env        string        `envconfig:"APP_ENV" default:"development"`
	HTTPAddr   string        `envconfig:"HTTP_ADDR" default:":8080"`
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"https://60h5imceodnn.manus.space/api"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"2h"`

	Admin AdminConfig
	Kafka KafkaConfig
}

type AdminConfig struct {
	Mode         string `envconfig:"ADMIN_AUTH_MODE" default:"password"`
	Username     string `envconfig:"ADMIN_USERNAME" default:"admin"`
	PasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
	TokenSecret  string `envconfig:"ADMIN_TOKEN_SECRET"`
}

// KafkaConfig is optional: the activity journal stays in memory when no brokers are set.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"storefront-events"`
}

// Environment returns the validated APP_ENV, development when it is unknown.
func (c Config) Environment() Environment {
	env, err := ParseEnvironment(c.Env)
	if err != nil {
		return Development
	}
	return env
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// a missing .env is normal outside local runs
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := ParseEnvironment(c.Env); err != nil {
		return err
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: API_BASE_URL %q is not an absolute URL", ErrInvalidConfig, c.APIBaseURL)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: SESSION_TTL must be positive", ErrInvalidConfig)
	}
	switch c.Admin.Mode {
	case AdminAuthDisabled:
	case AdminAuthPassword:
		// an empty hash leaves the panel disabled
		if c.Admin.PasswordHash != "" {
			if err := auth.ValidateHash(c.Admin.PasswordHash); err != nil {
				return fmt.Errorf("%w: ADMIN_PASSWORD_HASH: %w", ErrInvalidConfig, err)
			}
		}
	case AdminAuthToken:
		if len(c.Admin.TokenSecret) < 32 {
			return fmt.Errorf("%w: ADMIN_TOKEN_SECRET must be at least 32 characters long", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown ADMIN_AUTH_MODE %q", ErrInvalidConfig, c.Admin.Mode)
	}
	return nil
}
