package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Server struct {
		Port    string
		GinMode string
	}

	Log struct {
		Level string
	}

	Storage struct {
		Type string
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}

	Auth struct {
		JWTSecret string
		Issuer    string
		Audience  string
	}

	Assistant struct {
		URL     string
		Timeout time.Duration
	}

	Avatars struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		UseSSL    bool
		Region    string
		Bucket    string
		URLExpiry time.Duration
	}

	Birthdays struct {
		Locale   string
		TimeZone string
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "community")
	config.DB.Password = getEnv("DB_PASSWORD", "community_password")
	config.DB.Name = getEnv("DB_NAME", "community_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")

	config.Log.Level = getEnv("LOG_LEVEL", "info")

	config.Storage.Type = getEnv("STORAGE_TYPE", "postgres")

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	config.Auth.JWTSecret = getEnv("AUTH_JWT_SECRET", "")
	config.Auth.Issuer = getEnv("AUTH_JWT_ISSUER", "")
	config.Auth.Audience = getEnv("AUTH_JWT_AUDIENCE", "authenticated")

	config.Assistant.URL = getEnv("ASSISTANT_URL", "")
	config.Assistant.Timeout = getEnvAsDuration("ASSISTANT_TIMEOUT", 30*time.Second)

	config.Avatars.Endpoint = getEnv("MINIO_ENDPOINT", "")
	config.Avatars.AccessKey = getEnv("MINIO_ACCESS_KEY", "")
	config.Avatars.SecretKey = getEnv("MINIO_SECRET_KEY", "")
	config.Avatars.UseSSL = getEnvAsBool("MINIO_USE_SSL", true)
	config.Avatars.Region = getEnv("MINIO_REGION", "us-east-1")
	config.Avatars.Bucket = getEnv("AVATAR_BUCKET", "avatars")
	config.Avatars.URLExpiry = getEnvAsDuration("AVATAR_URL_EXPIRY", time.Hour)

	config.Birthdays.Locale = getEnv("BIRTHDAY_LOCALE", "en")
	config.Birthdays.TimeZone = getEnv("BIRTHDAY_TIMEZONE", "Local")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.Server.GinMode == "release"
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS into a list
func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORS.AllowOrigins)
}

// AllowedMethods splits CORS_ALLOW_METHODS into a list
func (c *Config) AllowedMethods() []string {
	return splitList(c.CORS.AllowMethods)
}

// AllowedHeaders splits CORS_ALLOW_HEADERS into a list
func (c *Config) AllowedHeaders() []string {
	return splitList(c.CORS.AllowHeaders)
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

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a time.Duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
