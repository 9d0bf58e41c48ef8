package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Upload configuration
	Upload UploadConfig

	// HR authentication configuration
	Auth AuthConfig

	// CORS configuration
	CORS CORSConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// UploadConfig holds uploaded-document storage configuration
type UploadConfig struct {
	Dir         string // directory served statically under /uploads
	StagingDir  string // staged blobs live here until the intake transaction commits
	MaxFileSize int64  // per-file limit in bytes
	MaxFiles    int    // per-submission attachment limit
}

// AuthConfig holds HR session token configuration. The whole section is
// optional: with an empty JWTSecret the service runs open, matching the
// original unauthenticated deployment.
type AuthConfig struct {
	JWTSecret         string
	TokenExpiry       time.Duration
	AdminEmail        string
	AdminPasswordHash string // bcrypt hash
}

// Enabled reports whether HR endpoints require authentication.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "3000"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Upload: UploadConfig{
			Dir:         getEnv("UPLOAD_DIR", "uploads"),
			StagingDir:  getEnv("UPLOAD_STAGING_DIR", "staging"),
			MaxFileSize: int64(getEnvAsInt("UPLOAD_MAX_FILE_SIZE_MB", 5)) * 1024 * 1024,
			MaxFiles:    getEnvAsInt("UPLOAD_MAX_FILES", 5),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("HR_JWT_SECRET", ""),
			TokenExpiry:       time.Duration(getEnvAsInt("HR_TOKEN_EXPIRY", 3600)) * time.Second,
			AdminEmail:        getEnv("HR_ADMIN_EMAIL", ""),
			AdminPasswordHash: getEnv("HR_ADMIN_PASSWORD_HASH", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Upload.Dir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILE_SIZE_MB must be positive")
	}

	if c.Upload.MaxFiles <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILES must be positive")
	}

	// An auth section is all-or-nothing: a secret without a credential (or the
	// reverse) would lock HR out or leave the token surface unverifiable.
	if c.Auth.Enabled() {
		if c.Auth.AdminEmail == "" {
			return fmt.Errorf("HR_ADMIN_EMAIL is required when HR_JWT_SECRET is set")
		}
		if c.Auth.AdminPasswordHash == "" {
			return fmt.Errorf("HR_ADMIN_PASSWORD_HASH is required when HR_JWT_SECRET is set")
		}
	} else if c.Auth.AdminEmail != "" || c.Auth.AdminPasswordHash != "" {
		return fmt.Errorf("HR_JWT_SECRET is required when HR admin credentials are set")
	}

	return nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
