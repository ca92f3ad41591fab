package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	DatabaseURL string
	Port        string
	Environment string
	ModelPath   string
	MetricsPath string
	// Persistence is skipped entirely when disabled; predictions are still
	// computed and returned, just not recorded.
	EnablePersistence bool
	// Security configuration
	AllowedOrigins  string
	TrustedProxies  string
	EnableRateLimit bool
	MaxRequestSize  int64
}

// New creates a new configuration instance from environment variables
func New() *Config {
	databaseURL := getEnv("DATABASE_URL", "")
	return &Config{
		DatabaseURL: databaseURL,
		Port:        getEnv("PORT", "5000"),
		Environment: getEnv("ENV", "development"),
		ModelPath:   getEnv("MODEL_PATH", "models/logistic_model.json"),
		MetricsPath: getEnv("METRICS_PATH", "models/metrics.json"),
		// Persisting requires a store; default to on whenever one is configured
		EnablePersistence: getEnv("ENABLE_PERSISTENCE", boolString(databaseURL != "")) == "true",
		// Security configuration
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", ""),
		TrustedProxies:  getEnv("TRUSTED_PROXIES", ""),
		EnableRateLimit: getEnv("ENABLE_RATE_LIMIT", "true") == "true",
		MaxRequestSize:  getEnvAsInt64("MAX_REQUEST_SIZE", 1*1024*1024), // 1MB default
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// PersistenceEnabled returns true if predictions should be written to the store
func (c *Config) PersistenceEnabled() bool {
	return c.EnablePersistence && c.DatabaseURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		return []string{}
	}
	return strings.Split(c.AllowedOrigins, ",")
}

// GetTrustedProxies returns a slice of trusted proxy IPs
func (c *Config) GetTrustedProxies() []string {
	if c.TrustedProxies == "" {
		return []string{} // No trusted proxies by default
	}
	return strings.Split(c.TrustedProxies, ",")
}
