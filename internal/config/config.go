// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	"github.com/allisson/go-api-starter/internal/database"
	appValidation "github.com/allisson/go-api-starter/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// AppName is reported by the root and health endpoints and in metrics.
	AppName string
	// AppVersion is reported by the health endpoint and in metrics.
	AppVersion string

	// DBDriver is the database driver to use ("sqlite", "postgres" or "mysql").
	DBDriver string
	// DBConnectionString is the connection string for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration
	// MigrationsPath is the root directory holding one migrations folder per driver.
	MigrationsPath string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string
	// LogFormat is "json" or "text".
	LogFormat string

	// SecretKey is the HMAC key used to sign access tokens.
	SecretKey string
	// SecretKeyCiphertext is a base64 encoded SecretKey encrypted with KMSKeyURI.
	// When set it takes precedence over SecretKey.
	SecretKeyCiphertext string
	// KMSKeyURI is a gocloud.dev/secrets keeper URI.
	KMSKeyURI string
	// JWTAlgorithm is the HMAC signing algorithm.
	JWTAlgorithm string
	// AccessTokenExpiration is the lifetime of issued access tokens.
	AccessTokenExpiration time.Duration

	// RateLimitEnabled indicates whether per-user rate limiting for authenticated endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second for authenticated endpoints.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for authenticated endpoints rate limiting.
	RateLimitBurst int

	// RateLimitAuthEnabled indicates whether per-IP rate limiting of login and register is enabled.
	RateLimitAuthEnabled bool
	// RateLimitAuthRequestsPerSec is the number of requests allowed per second per client IP.
	RateLimitAuthRequestsPerSec float64
	// RateLimitAuthBurst is the burst size for login and register rate limiting.
	RateLimitAuthBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Application
		AppName:    env.GetString("APP_NAME", "go-api-starter"),
		AppVersion: env.GetString("APP_VERSION", "1.0.0"),

		// Database configuration
		DBDriver:             env.GetString("DB_DRIVER", database.DriverSQLite),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", "file:app.db?_pragma=foreign_keys(1)"),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME", 5, time.Minute),
		MigrationsPath:       env.GetString("MIGRATIONS_PATH", "migrations"),

		// Logging
		LogLevel:  env.GetString("LOG_LEVEL", "info"),
		LogFormat: env.GetString("LOG_FORMAT", "json"),

		// Auth
		SecretKey:             env.GetString("SECRET_KEY", ""),
		SecretKeyCiphertext:   env.GetString("SECRET_KEY_CIPHERTEXT", ""),
		KMSKeyURI:             env.GetString("KMS_KEY_URI", ""),
		JWTAlgorithm:          env.GetString("JWT_ALGORITHM", "HS256"),
		AccessTokenExpiration: env.GetDuration("ACCESS_TOKEN_EXPIRE_MINUTES", 30, time.Minute),

		// Rate Limiting (authenticated endpoints, per user)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// Rate Limiting for login and register (per IP)
		RateLimitAuthEnabled:        env.GetBool("RATE_LIMIT_AUTH_ENABLED", true),
		RateLimitAuthRequestsPerSec: env.GetFloat64("RATE_LIMIT_AUTH_REQUESTS_PER_SEC", 5.0),
		RateLimitAuthBurst:          env.GetInt("RATE_LIMIT_AUTH_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8080"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "go_api_starter"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.DBDriver, validation.Required, validation.In(database.DriverSQLite, database.DriverPostgres, database.DriverMySQL)),
		validation.Field(&c.DBConnectionString, validation.Required),
		validation.Field(&c.LogFormat, validation.In("json", "text")),
		validation.Field(&c.SecretKey, validation.When(c.SecretKeyCiphertext == "", validation.Required)),
		validation.Field(&c.SecretKeyCiphertext, appValidation.Base64),
		validation.Field(&c.KMSKeyURI, validation.When(c.SecretKeyCiphertext != "", validation.Required)),
		validation.Field(&c.JWTAlgorithm, validation.Required, validation.In("HS256", "HS384", "HS512")),
		validation.Field(&c.AccessTokenExpiration, validation.Required, validation.Min(time.Second)),
		validation.Field(
			&c.MetricsPort,
			validation.When(c.MetricsEnabled, validation.Required, validation.Min(1), validation.Max(65535)),
		),
	)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
