package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// Config carries everything the process needs, validated once at start.
// Missing or malformed values are fatal misconfiguration; nothing reads
// the environment after Load returns.
type Config struct {
	Port int

	DBHost     string
	DBPort     string
	DBUsername string
	DBPassword string
	DBDatabase string

	// SessionSecret signs/verifies the session tokens minted by the
	// sign-in flow. The OAuth client credentials belong to that flow;
	// they are validated here so a misdeployed process fails fast.
	SessionSecret     []byte
	OAuthClientID     string
	OAuthClientSecret string

	RateLimitCreates int
	RateLimitWindow  time.Duration

	CORSAllowedOrigins []string
}

// Load reads and validates the environment. It returns an error naming
// every missing required variable rather than the first one.
func Load() (*Config, error) {
	cfg := &Config{
		DBHost:            os.Getenv("TODO_DB_HOST"),
		DBPort:            os.Getenv("TODO_DB_PORT"),
		DBUsername:        os.Getenv("TODO_DB_USERNAME"),
		DBPassword:        os.Getenv("TODO_DB_PASSWORD"),
		DBDatabase:        os.Getenv("TODO_DB_DATABASE"),
		OAuthClientID:     os.Getenv("OAUTH_CLIENT_ID"),
		OAuthClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
	}

	var missing []string
	for name, value := range map[string]string{
		"TODO_DB_HOST":        cfg.DBHost,
		"TODO_DB_PORT":        cfg.DBPort,
		"TODO_DB_USERNAME":    cfg.DBUsername,
		"TODO_DB_PASSWORD":    cfg.DBPassword,
		"TODO_DB_DATABASE":    cfg.DBDatabase,
		"OAUTH_CLIENT_ID":     cfg.OAuthClientID,
		"OAUTH_CLIENT_SECRET": cfg.OAuthClientSecret,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		missing = append(missing, "SESSION_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	cfg.SessionSecret = []byte(secret)

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("invalid PORT %q", portStr)
		}
		port = p
	}
	cfg.Port = port

	cfg.RateLimitCreates = 5
	if limitStr := os.Getenv("RATE_LIMIT_CREATES"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_CREATES %q", limitStr)
		}
		cfg.RateLimitCreates = n
	}

	cfg.RateLimitWindow = 10 * time.Second
	if windowStr := os.Getenv("RATE_LIMIT_WINDOW"); windowStr != "" {
		d, err := time.ParseDuration(windowStr)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW %q", windowStr)
		}
		cfg.RateLimitWindow = d
	}

	cfg.CORSAllowedOrigins = []string{"https://*", "http://*"}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	}

	return cfg, nil
}

// DSN builds the postgres connection string for GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUsername, c.DBPassword, c.DBDatabase, c.DBPort)
}
