package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPGX      = "pgx"
	DriverPostgres = "postgres"
)

// Config holds everything cmd/api needs to start.
type Config struct {
	Addr               string
	Database           Database
	DBDriver           string
	DBTimeout          time.Duration
	LogLevel           slog.Level
	LogFormat          string
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	EnableHSTS         bool
}

// Database holds the pieces the connection string is assembled from.
// DSN, when set, wins over the individual fields.
type Database struct {
	Username string
	Password string
	Host     string
	Name     string
	DSN      string
}

// ConnString returns the DSN or builds one from the individual fields.
func (d Database) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     d.Host,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// LoadEnvFiles reads .env and .env.local into the process environment.
func LoadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the configuration from the environment, falling back to defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr: getEnv("APP_ADDR", ":8080"),
		Database: Database{
			Username: getEnv("DATABASE_USERNAME", "username"),
			Password: getEnv("DATABASE_PASSWORD", "password"),
			Host:     getEnv("DATABASE_HOST", "db"),
			Name:     getEnv("DATABASE_NAME", "dbname"),
			DSN:      os.Getenv("DB_DSN"),
		},
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverPGX)),
		LogFormat:  strings.ToLower(getEnv("LOG_FORMAT", "text")),
		EnableHSTS: os.Getenv("ENABLE_HSTS") == "true",
	}

	switch cfg.DBDriver {
	case DriverPGX, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DBDriver)
	}

	var err error
	if cfg.DBTimeout, err = time.ParseDuration(getEnv("DB_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("DB_TIMEOUT: %w", err)
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20")); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES: %w", err)
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// RedactDSN hides the userinfo part of a connection string.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
