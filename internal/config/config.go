package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port        string
	StoreDriver string
	DatabaseURL string
	DBLogLevel  string
	// JWT
	JWTSecret          string
	JWTPreviousSecrets []string
	JWTIssuer          string
	TokenTTL           time.Duration
	// HTTP
	CORSOrigins []string
	GinMode     string
}

func Load() Config {
	return Config{
		Port:               getenv("PORT", "8080"),
		StoreDriver:        strings.ToLower(getenv("STORE_DRIVER", DriverPostgres)),
		DatabaseURL:        databaseURL(),
		DBLogLevel:         getenv("DB_LOG_LEVEL", "warn"),
		JWTSecret:          getenv("JWT_SECRET", "discuss-dev-secret"),
		JWTPreviousSecrets: getenvList("JWT_PREVIOUS_SECRETS"),
		JWTIssuer:          getenv("JWT_ISSUER", "discuss"),
		TokenTTL:           getenvDuration("JWT_TTL", 72*time.Hour),
		CORSOrigins:        orDefault(getenvList("CORS_ORIGINS"), []string{"*"}),
		GinMode:            getenv("GIN_MODE", "debug"),
	}
}

// UsesDevSecret reports whether the signing secret is the built-in fallback.
func (c Config) UsesDevSecret() bool {
	return c.JWTSecret == "discuss-dev-secret"
}

// databaseURL prefers DATABASE_URL and otherwise assembles a DSN from the
// discrete DB_* variables.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_USER", "postgres"),
		getenv("DB_PASSWORD", "postgres"),
		getenv("DB_NAME", "discuss"),
		getenv("DB_SSLMODE", "disable"),
	)
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getenvDuration accepts Go durations ("72h") or a plain number of seconds.
func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}
