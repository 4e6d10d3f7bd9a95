package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	DatabaseURL        string
	DBConnectTimeout   time.Duration
	DBMaxConns         int
	Addr               string
	AllowedOrigins     []string
	TokenSecret        string
	AllowedEmailDomain string
	LogLevel           string
	LogFormat          string
	SeedDemoData       bool
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, errors.New("DATABASE_URL env var is required")
	}

	secret := os.Getenv("AUTH_TOKEN_SECRET")
	if secret == "" {
		return Config{}, errors.New("AUTH_TOKEN_SECRET env var is required")
	}

	addr := fmt.Sprintf(":%s", envOrDefault("PORT", "8080"))
	origins := parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	return Config{
		DatabaseURL:        dsn,
		DBConnectTimeout:   time.Duration(envIntOrDefault("DB_CONNECT_TIMEOUT_SECONDS", 30)) * time.Second,
		DBMaxConns:         envIntOrDefault("DB_MAX_CONNS", 10),
		Addr:               addr,
		AllowedOrigins:     origins,
		TokenSecret:        secret,
		AllowedEmailDomain: os.Getenv("AUTH_ALLOWED_EMAIL_DOMAIN"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		SeedDemoData:       os.Getenv("SEED_DEMO_DATA") == "1",
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
