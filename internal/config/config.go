package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBPath string

	// Operator credentials. APP_PASS_HASH is a bcrypt hash of the password.
	AppUser     string
	AppPassHash string

	// Session lifetime; tokens older than this are treated as expired.
	SessionTTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBPath: getEnv("DB_PATH", "finance.db"),

		AppUser:     getEnv("APP_USER", ""),
		AppPassHash: getEnv("APP_PASS_HASH", ""),
	}

	// Parse session TTL
	ttlStr := getEnv("SESSION_TTL", "1h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to 1h\n", ttlStr)
		ttl = time.Hour
	}
	config.SessionTTL = ttl

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
