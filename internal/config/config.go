package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration,
// populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	MinIO    MinIOConfig
	Features FeatureConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	// ServiceRoleKey guards internal endpoints (worker <-> API).
	ServiceRoleKey string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

// EmailConfig drives the Resend transactional email client.
// An empty APIKey disables outbound email rather than failing startup.
type EmailConfig struct {
	APIKey string
	From   string
}

type MinIOConfig struct {
	Endpoint  string // empty endpoint disables uploads
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// FeatureConfig holds opt-in behavior switches.
type FeatureConfig struct {
	// EnquiryEmailNotifications enables the email-per-enquiry flow.
	// Off by default: the product works fine without a mail provider.
	EnquiryEmailNotifications bool
	// EnquiryRetentionDays controls how long archived enquiries are kept
	// before the worker prunes them.
	EnquiryRetentionDays int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "PickMyArtist API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			ServiceRoleKey: getEnv("SERVICE_ROLE_KEY", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "pickmyartist"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 15),  // 15 minutes
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72), // 3 days
		},
		Email: EmailConfig{
			APIKey: getEnv("RESEND_API_KEY", ""),
			From:   getEnv("EMAIL_FROM", "PickMyArtist <onboarding@resend.dev>"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "profiles"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		Features: FeatureConfig{
			EnquiryEmailNotifications: getEnv("EMAIL_ENQUIRY_NOTIFICATIONS", "false") == "true",
			EnquiryRetentionDays:      getEnvInt("ENQUIRY_RETENTION_DAYS", 365),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks whether the config is safe to run with.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.App.ServiceRoleKey == "" {
			fmt.Println("WARNING: SERVICE_ROLE_KEY not set - internal endpoints are disabled")
		}
	}

	if c.Features.EnquiryEmailNotifications && c.Email.APIKey == "" {
		return fmt.Errorf("EMAIL_ENQUIRY_NOTIFICATIONS=true requires RESEND_API_KEY")
	}

	return nil
}

// StorageEnabled reports whether object storage is configured.
// Uploads return a setup hint instead of an error page when it isn't.
func (c *Config) StorageEnabled() bool {
	return c.MinIO.Endpoint != ""
}

// EmailEnabled reports whether outbound email is configured.
func (c *Config) EmailEnabled() bool {
	return c.Email.APIKey != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
