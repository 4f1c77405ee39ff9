package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName          string
	AppVersion       string
	Environment      string
	HTTPAddr         string
	LogLevel         string
	AuthCookieName   string
	AuthCookieSecure bool
	SessionTTL       time.Duration

	// DefaultOrgID is the organization administrators fall back to for
	// organization-scoped self-service views, since they have no home
	// organization of their own. Zero means no fallback is configured.
	DefaultOrgID int64

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")
	authCookieSecure := environment == "production"
	if !authCookieSecure {
		authCookieSecure = getenvBool("AUTH_COOKIE_SECURE", false)
	}

	return Config{
		AppName:          getenv("APP_SERVICE", "leadhub"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      environment,
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		LogLevel:         getenv("LOG_LEVEL", "info"),
		AuthCookieName:   getenv("AUTH_COOKIE_NAME", "_sid"),
		AuthCookieSecure: authCookieSecure,
		SessionTTL:       getenvDuration("SESSION_TTL", 24*time.Hour),
		DefaultOrgID:     getenvInt64("DEFAULT_ORG", 0),
		DBType:           getenv("DATABASE_TYPE", "postgres"),
		DBHost:           getenv("DATABASE_HOST", "localhost"),
		DBPort:           getenv("DATABASE_PORT", "5432"),
		DBName:           getenv("DATABASE_NAME", "leadhub"),
		DBUser:           getenv("DATABASE_USER", "postgres"),
		DBPassword:       getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:        getenv("DATABASE_SSLMODE", "disable"),
	}
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getenvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvInt64(key string, fallback int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
