package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Digest   DigestConfig
	CORS     CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// AuthConfig holds token-issuing configuration. SecretKey is a base64-encoded
// fernet key; when empty, a random key is generated at startup and issued
// tokens do not survive a restart.
type AuthConfig struct {
	SecretKey string
	TokenTTL  time.Duration
}

// DigestConfig holds the cron schedule for the pipeline digest job.
type DigestConfig struct {
	Schedule string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	tokenTTL, err := time.ParseDuration(getEnv("AUTH_TOKEN_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/transaction_manager.db"),
		},
		Auth: AuthConfig{
			SecretKey: getEnv("AUTH_SECRET_KEY", ""),
			TokenTTL:  tokenTTL,
		},
		Digest: DigestConfig{
			Schedule: getEnv("DIGEST_SCHEDULE", "@hourly"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
