// Package config provides centralized configuration for the case evaluation
// service. Values come from the environment (optionally seeded from a .env
// file) and are read once at process start.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported lead store backends.
const (
	DatabaseSQLite   = "sqlite3"
	DatabaseTurso    = "turso"
	DatabasePostgres = "postgres"
)

// Config is the immutable process configuration.
type Config struct {
	// Server
	Port               string
	GinMode            string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	CORSAllowedOrigins []string
	TrustedProxies     []string

	// Lead store
	DatabaseType       string
	DatabaseURL        string
	DatabaseName       string
	DataDirectory      string
	TursoAuthToken     string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	DBConnMaxIdleTime  time.Duration
	SlowQueryThreshold time.Duration

	// Admin session
	AdminEmail    string
	AdminPassword string
	JWTSecret     string
	SessionTTL    time.Duration
	CookieSecure  bool

	// Notifications
	ResendAPIKey    string
	EmailFrom       string
	EmailFromName   string
	LeadNotifyEmail string

	// Logging
	LogLevel     string
	LogJSON      bool
	LogToFile    bool
	LogDirectory string

	// Site
	SiteName  string
	SitePhone string
	SiteURL   string
}

// ErrMissingAdminCredentials is returned when no administrator account is configured.
var ErrMissingAdminCredentials = errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")

// ErrMissingJWTSecret is returned in release mode when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when GIN_MODE=release")

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:4321")
	v.SetDefault("TRUSTED_PROXIES", "127.0.0.1,::1")

	v.SetDefault("DATABASE_TYPE", DatabaseSQLite)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATABASE_NAME", "caseeval")
	v.SetDefault("DATA_DIRECTORY", "data")
	v.SetDefault("TURSO_AUTH_TOKEN", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 3)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 3*time.Minute)
	v.SetDefault("SLOW_QUERY_THRESHOLD", 500*time.Millisecond)

	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SESSION_TTL", 24*time.Hour)
	v.SetDefault("COOKIE_SECURE", false)

	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("EMAIL_FROM", "noreply@example.com")
	v.SetDefault("EMAIL_FROM_NAME", "Case Evaluation")
	v.SetDefault("LEAD_NOTIFY_EMAIL", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", true)
	v.SetDefault("LOG_TO_FILE", false)
	v.SetDefault("LOG_DIRECTORY", "logs")

	v.SetDefault("SITE_NAME", "Case Evaluation Center")
	v.SetDefault("SITE_PHONE", "")
	v.SetDefault("SITE_URL", "http://localhost:8080")
}

// Load reads .env (when present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration overrides from .env file")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		GinMode:            v.GetString("GIN_MODE"),
		ServerReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
		ServerWriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		ServerIdleTimeout:  v.GetDuration("SERVER_IDLE_TIMEOUT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		TrustedProxies:     splitList(v.GetString("TRUSTED_PROXIES")),

		DatabaseType:       strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_TYPE"))),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DatabaseName:       v.GetString("DATABASE_NAME"),
		DataDirectory:      v.GetString("DATA_DIRECTORY"),
		TursoAuthToken:     v.GetString("TURSO_AUTH_TOKEN"),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:  v.GetDuration("DB_CONN_MAX_LIFETIME"),
		DBConnMaxIdleTime:  v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		SlowQueryThreshold: v.GetDuration("SLOW_QUERY_THRESHOLD"),

		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		SessionTTL:    v.GetDuration("SESSION_TTL"),
		CookieSecure:  v.GetBool("COOKIE_SECURE"),

		ResendAPIKey:    v.GetString("RESEND_API_KEY"),
		EmailFrom:       v.GetString("EMAIL_FROM"),
		EmailFromName:   v.GetString("EMAIL_FROM_NAME"),
		LeadNotifyEmail: v.GetString("LEAD_NOTIFY_EMAIL"),

		LogLevel:     v.GetString("LOG_LEVEL"),
		LogJSON:      v.GetBool("LOG_JSON"),
		LogToFile:    v.GetBool("LOG_TO_FILE"),
		LogDirectory: v.GetString("LOG_DIRECTORY"),

		SiteName:  v.GetString("SITE_NAME"),
		SitePhone: v.GetString("SITE_PHONE"),
		SiteURL:   strings.TrimRight(v.GetString("SITE_URL"), "/"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no safe default.
func (c *Config) Validate() error {
	if c.AdminEmail == "" || c.AdminPassword == "" {
		return ErrMissingAdminCredentials
	}
	if c.JWTSecret == "" && c.IsRelease() {
		return ErrMissingJWTSecret
	}
	switch c.DatabaseType {
	case DatabaseSQLite:
	case DatabaseTurso, DatabasePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for DATABASE_TYPE=%s", c.DatabaseType)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_TYPE %q", c.DatabaseType)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// NotificationsEnabled reports whether new-lead emails can be sent.
func (c *Config) NotificationsEnabled() bool {
	return c.ResendAPIKey != "" && c.LeadNotifyEmail != ""
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
