package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	Google   GoogleConfig
	Frontend FrontendConfig
}

type ServerConfig struct {
	Port string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

type FrontendConfig struct {
	BaseURL string
}

var ErrMisconfigured = errors.New("config invalid")

func Load() (Config, error) {
	ttl, err := time.ParseDuration(getenv("JWT_EXPIRES_IN", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid JWT_EXPIRES_IN", ErrMisconfigured)
	}

	cfg := Config{
		Server: ServerConfig{
			Port: getenv("PORT", "8080"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  ttl,
		},
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			CallbackURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
		},
		Frontend: FrontendConfig{
			BaseURL: getenv("FRONTEND_URL", "http://localhost:3000"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
