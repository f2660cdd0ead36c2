package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string
	// Clerk identity provider
	ClerkJWKSURL   string // RS256 session tokens are verified against this
	ClerkJWTSecret string // HS256 fallback for local development tokens
	FrontendURL    string
	// Redis (public-profile cache + rate limiting)
	RedisURL      string
	RedisPassword string
	// Sentry
	SentryDSN   string
	Environment string
	// Rate limiting
	RateLimitWindowSeconds     int
	RateLimitGlobalThreshold   int
	RateLimitMutationThreshold int
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; ignored in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		ClerkJWKSURL:   strings.TrimRight(getEnv("CLERK_JWKS_URL", ""), "/"),
		ClerkJWTSecret: getEnv("CLERK_JWT_SECRET", ""),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SentryDSN:   getEnv("SENTRY_DSN", ""),
		Environment: getEnv("ENVIRONMENT", "development"),

		RateLimitWindowSeconds:     getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold:   getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitMutationThreshold: getEnvInt("RATE_LIMIT_MUTATION_THRESHOLD", 20),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.ClerkJWKSURL == "" && cfg.ClerkJWTSecret == "" {
		log.Println("WARNING: Neither CLERK_JWKS_URL nor CLERK_JWT_SECRET is set. All authenticated routes will reject requests.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Profile caching is off and rate limiting uses the in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
