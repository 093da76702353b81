package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Env      string
	HTTP     HTTPConfig
	Gateway  GatewayConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type HTTPConfig struct {
	Addr           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// GatewayConfig holds the Razorpay credentials. KeySecret is server-side
// only and must never be echoed to clients; PublicKeyID is what the payment
// widget is initialized with and is safe to expose.
type GatewayConfig struct {
	KeyID       string
	KeySecret   string
	PublicKeyID string
	BaseURL     string
}

type DatabaseConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	Database string
	Schema   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from the environment. A .env file in the working
// directory is picked up automatically via godotenv.
func Load() Config {
	return Config{
		Env: getenv("LOGOMARKET_ENV", "production"),
		HTTP: HTTPConfig{
			Addr:           getenv("LOGOMARKET_HTTP_ADDR", ":8080"),
			AllowedOrigins: splitOrigins(os.Getenv("LOGOMARKET_ALLOWED_ORIGINS")),
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
		},
		Gateway: GatewayConfig{
			KeyID:       os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret:   os.Getenv("RAZORPAY_KEY_SECRET"),
			PublicKeyID: getenv("RAZORPAY_PUBLIC_KEY_ID", os.Getenv("RAZORPAY_KEY_ID")),
			BaseURL:     getenv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		},
		Database: DatabaseConfig{
			Username: os.Getenv("LOGOMARKET_DB_USERNAME"),
			Password: os.Getenv("LOGOMARKET_DB_PASSWORD"),
			Host:     os.Getenv("LOGOMARKET_DB_HOST"),
			Port:     getenv("LOGOMARKET_DB_PORT", "5432"),
			Database: os.Getenv("LOGOMARKET_DB_DATABASE"),
			Schema:   getenv("LOGOMARKET_DB_SCHEMA", "public"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("LOGOMARKET_REDIS_ADDR"),
			Password: os.Getenv("LOGOMARKET_REDIS_PASSWORD"),
		},
	}
}

// GatewayConfigured reports whether both gateway credentials are present.
// A deployment without them must refuse to create orders rather than
// silently accepting payments it can never verify.
func (c Config) GatewayConfigured() bool {
	return c.Gateway.KeyID != "" && c.Gateway.KeySecret != ""
}

// DevMode enables error detail in HTTP responses.
func (c Config) DevMode() bool {
	return c.Env == "development"
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Schema,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
