package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application settings.
type Config struct {
	Database DatabaseConfig
	Remote   RemoteConfig
}

// DatabaseConfig holds the store connection settings.
type DatabaseConfig struct {
	Driver   string
	Path     string // sqlite only
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	ConnectTimeout time.Duration
}

// RemoteConfig holds settings for the remote resource client.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Load reads configuration from a .env file (when present) and environment
// variables. Missing values fall back to defaults suitable for local use.
func Load() *Config {
	// Absence of a .env file is fine; the environment still applies.
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			Driver:         getEnv("DB_DRIVER", DriverSQLite),
			Path:           getEnv("DB_PATH", "hrconsole.db"),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "hrconsole"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT_SECONDS", 30*time.Second),
		},
		Remote: RemoteConfig{
			BaseURL: getEnv("REMOTE_API_URL", "https://jsonplaceholder.typicode.com"),
			Timeout: getEnvDuration("REMOTE_TIMEOUT_SECONDS", 10*time.Second),
		},
	}
}

// getEnv returns the environment variable value or the default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
