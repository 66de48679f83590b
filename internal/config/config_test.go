package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "go-api-starter", cfg.AppName)
				assert.Equal(t, "1.0.0", cfg.AppVersion)
				assert.Equal(t, "sqlite", cfg.DBDriver)
				assert.Equal(t, "file:app.db?_pragma=foreign_keys(1)", cfg.DBConnectionString)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "migrations", cfg.MigrationsPath)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "json", cfg.LogFormat)
				assert.Empty(t, cfg.SecretKey)
				assert.Equal(t, "HS256", cfg.JWTAlgorithm)
				assert.Equal(t, 30*time.Minute, cfg.AccessTokenExpiration)
				assert.True(t, cfg.RateLimitEnabled)
				assert.Equal(t, 10.0, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 20, cfg.RateLimitBurst)
				assert.True(t, cfg.RateLimitAuthEnabled)
				assert.Equal(t, 5.0, cfg.RateLimitAuthRequestsPerSec)
				assert.Equal(t, 10, cfg.RateLimitAuthBurst)
				assert.False(t, cfg.CORSEnabled)
				assert.Equal(t, "http://localhost:3000,http://localhost:8080", cfg.CORSAllowOrigins)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "go_api_starter", cfg.MetricsNamespace)
				assert.Equal(t, 8081, cfg.MetricsPort)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST": "localhost",
				"SERVER_PORT": "9090",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":    "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS": "50",
				"DB_MAX_IDLE_CONNECTIONS": "10",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load custom auth configuration",
			envVars: map[string]string{
				"SECRET_KEY":                  "change-me",
				"JWT_ALGORITHM":               "HS512",
				"ACCESS_TOKEN_EXPIRE_MINUTES": "5",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "change-me", cfg.SecretKey)
				assert.Equal(t, "HS512", cfg.JWTAlgorithm)
				assert.Equal(t, 5*time.Minute, cfg.AccessTokenExpiration)
			},
		},
		{
			name: "load custom log configuration",
			envVars: map[string]string{
				"LOG_LEVEL":  "debug",
				"LOG_FORMAT": "text",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "text", cfg.LogFormat)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for key, value := range tt.envVars {
				require.NoError(t, os.Setenv(key, value))
			}

			tt.validate(t, Load())
		})
	}
}

func validConfig() *Config {
	return &Config{
		ServerPort:            8080,
		DBDriver:              "sqlite",
		DBConnectionString:    "file::memory:",
		LogFormat:             "json",
		SecretKey:             "change-me",
		JWTAlgorithm:          "HS256",
		AccessTokenExpiration: 30 * time.Minute,
		MetricsEnabled:        true,
		MetricsPort:           8081,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(cfg *Config) {}},
		{
			name:    "missing secret key",
			mutate:  func(cfg *Config) { cfg.SecretKey = "" },
			wantErr: "SecretKey",
		},
		{
			name: "ciphertext replaces secret key",
			mutate: func(cfg *Config) {
				cfg.SecretKey = ""
				cfg.SecretKeyCiphertext = "Y2lwaGVydGV4dA=="
				cfg.KMSKeyURI = "base64key://"
			},
		},
		{
			name: "ciphertext without kms key uri",
			mutate: func(cfg *Config) {
				cfg.SecretKeyCiphertext = "Y2lwaGVydGV4dA=="
			},
			wantErr: "KMSKeyURI",
		},
		{
			name:    "unsupported driver",
			mutate:  func(cfg *Config) { cfg.DBDriver = "oracle" },
			wantErr: "DBDriver",
		},
		{
			name:    "asymmetric algorithm",
			mutate:  func(cfg *Config) { cfg.JWTAlgorithm = "RS256" },
			wantErr: "JWTAlgorithm",
		},
		{
			name:    "zero token lifetime",
			mutate:  func(cfg *Config) { cfg.AccessTokenExpiration = 0 },
			wantErr: "AccessTokenExpiration",
		},
		{
			name:    "unknown log format",
			mutate:  func(cfg *Config) { cfg.LogFormat = "xml" },
			wantErr: "LogFormat",
		},
		{
			name: "metrics port ignored when metrics disabled",
			mutate: func(cfg *Config) {
				cfg.MetricsEnabled = false
				cfg.MetricsPort = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: ""}).GetGinMode())
}

func TestConfig_Validate_CiphertextMustBeBase64(t *testing.T) {
	cfg := validConfig()
	cfg.SecretKeyCiphertext = "not base64!"
	cfg.KMSKeyURI = "base64key://"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SecretKeyCiphertext")
}
