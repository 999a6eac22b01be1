package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Email       EmailConfig
	API         APIConfig
	Jobs        JobsConfig
	Logging     LoggingConfig
	Environment string
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
}

type AuthConfig struct {
	JWTSecret     string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type EmailConfig struct {
	APIKey  string
	From    string
	Enabled bool
}

type APIConfig struct {
	PageSize int
}

type JobsConfig struct {
	RetryInviteEmail int
	RetryRSVPEmail   int
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 25),
		},
		Auth: authFromEnv(),
		Email: EmailConfig{
			APIKey:  getEnv("RESEND_API_KEY", ""),
			From:    getEnv("EMAIL_FROM", "no-reply@gatherly.example"),
			Enabled: getEnvBool("EMAIL_ENABLED", false),
		},
		API: APIConfig{
			PageSize: getEnvInt("API_PAGE_SIZE", 10),
		},
		Jobs: JobsConfig{
			RetryInviteEmail: getEnvInt("JOB_RETRY_INVITE_EMAIL", 3),
			RetryRSVPEmail:   getEnvInt("JOB_RETRY_RSVP_EMAIL", 3),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.API.PageSize < 1 {
		return Config{}, fmt.Errorf("API_PAGE_SIZE must be >= 1")
	}
	return cfg, nil
}

// LoadAuth loads only the auth section, for tooling that never touches
// the database.
func LoadAuth() (AuthConfig, error) {
	cfg := authFromEnv()
	if cfg.JWTSecret == "" {
		return AuthConfig{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func authFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AccessExpiry:  time.Duration(getEnvInt("JWT_ACCESS_EXPIRY_MINUTES", 60)) * time.Minute,
		RefreshExpiry: time.Duration(getEnvInt("JWT_REFRESH_EXPIRY_HOURS", 24)) * time.Hour,
		Issuer:        getEnv("JWT_ISSUER", "gatherly"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
