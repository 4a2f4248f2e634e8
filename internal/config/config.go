package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "github.com/joho/godotenv/autoload"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"
)

type Config struct {
	Port    string
	Env     string
	Backend string

	SupabaseURL string
	SupabaseKey string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	CloudinaryCloudName string
	DisplayTimezone     string

	ReadinessTimeout time.Duration
	GatewayTimeout   time.Duration

	RedisAddr       string
	SearchRateLimit int64

	OTELEndpoint    string
	OTELServiceName string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first by godotenv.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("ENV", "development"),
		Backend:             strings.ToLower(getEnv("BACKEND", BackendREST)),
		SupabaseURL:         strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseKey:         os.Getenv("SUPABASE_KEY"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              getEnv("DB_NAME", "postgres"),
		DBSSLMode:           getEnv("DB_SSLMODE", "require"),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", "df8w2fain"),
		DisplayTimezone:     getEnv("DISPLAY_TIMEZONE", "UTC"),
		ReadinessTimeout:    getDuration("READINESS_TIMEOUT", 5*time.Second),
		GatewayTimeout:      getDuration("GATEWAY_TIMEOUT", 10*time.Second),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		SearchRateLimit:     int64(getInt("SEARCH_RATE_LIMIT", 30)),
		OTELEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTELServiceName:     getEnv("OTEL_SERVICE_NAME", "nexus-api"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendREST:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_KEY are required for the rest backend")
		}
		if _, err := url.ParseRequestURI(c.SupabaseURL); err != nil {
			return fmt.Errorf("invalid SUPABASE_URL: %w", err)
		}
		if err := checkAnonKey(c.SupabaseKey, time.Now()); err != nil {
			return err
		}
	case BackendPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown BACKEND %q", c.Backend)
	}

	if _, err := time.LoadLocation(c.DisplayTimezone); err != nil {
		return fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}
	if c.ReadinessTimeout <= 0 || c.GatewayTimeout <= 0 {
		return errors.New("READINESS_TIMEOUT and GATEWAY_TIMEOUT must be positive")
	}
	return nil
}

// DSN builds the Postgres connection string for the postgres backend.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Location returns the time zone used for display dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// checkAnonKey inspects the Supabase key claims. The signature is not
// verified here; the backend does that on every request.
func checkAnonKey(key string, now time.Time) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return fmt.Errorf("SUPABASE_KEY is not a valid JWT: %w", err)
	}

	role, _ := claims["role"].(string)
	if role != "anon" {
		return fmt.Errorf("SUPABASE_KEY must be an anon key, got role %q", role)
	}

	exp, err := claims.GetExpirationTime()
	if err == nil && exp != nil && exp.Before(now) {
		log.Printf("⚠️ SUPABASE_KEY expired at %s", exp.Format(time.RFC3339))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
