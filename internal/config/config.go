package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv  string
	Port     string
	Database DatabaseConfig
	Labels   LabelConfig
}

// DatabaseConfig holds database configuration. When Host is localhost and
// no password is set, the embedded database is used instead of an external
// server.
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Quiet    bool
}

// LabelConfig holds the default QR label sheet geometry.
type LabelConfig struct {
	Cols       int
	Rows       int
	MarginTop  float64
	MarginLeft float64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		NodeEnv: getEnv("NODE_ENV", "development"),
		Port:    getEnv("PORT", "3310"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "invtally"),
			Quiet:    getEnv("DB_QUIET", "true") == "true",
		},
		Labels: LabelConfig{
			Cols:       getEnvInt("LABEL_COLS", 4),
			Rows:       getEnvInt("LABEL_ROWS", 10),
			MarginTop:  10,
			MarginLeft: 8,
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
