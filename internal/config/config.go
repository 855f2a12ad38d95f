// Package config provides application configuration loaded from the
// environment, with defaults suited to local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/happyplace/internal/validation"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config defines the application configuration interface.
type Config interface {
	GetServerPort() string
	GetDatabaseURL() string
	GetEnvironment() string
	GetLogLevel() string
	IsProduction() bool
}

// ServerConfig interface for server-specific configuration.
type ServerConfig interface {
	GetServerPort() string
	GetReadTimeout() time.Duration
	GetWriteTimeout() time.Duration
	GetIdleTimeout() time.Duration
	GetShutdownTimeout() time.Duration
}

// CacheConfig interface for the listing and fragment cache.
type CacheConfig interface {
	IsRedisEnabled() bool
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetCacheTTL() time.Duration
}

// SiteConfig interface for values injected into rendered pages.
type SiteConfig interface {
	GetSiteName() string
	GetSiteURL() string
	GetMapboxAccessToken() string
}

// AppConfig implements all configuration interfaces.
type AppConfig struct {
	serverPort        string
	databaseURL       string
	environment       string
	logLevel          string
	logHuman          bool
	readTimeout       time.Duration
	writeTimeout      time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
	redisEnabled      bool
	redisAddr         string
	redisPassword     string
	redisDB           int
	cacheTTL          time.Duration
	mapboxAccessToken string
	siteName          string
	siteURL           string
	previewEnabled    bool
	previewDir        string
	rateLimitRPM      int
	inquiryRateLimit  int
}

// NewConfig creates a new configuration instance with default values
// and overrides from environment variables.
func NewConfig() *AppConfig {
	environment := getEnvString("ENVIRONMENT", EnvDevelopment)
	return &AppConfig{
		serverPort:        getEnvString("SERVER_PORT", "8080"),
		databaseURL:       getEnvString("DATABASE_URL", "happyplace.db"),
		environment:       environment,
		logLevel:          getEnvString("LOG_LEVEL", "info"),
		logHuman:          getEnvBool("LOG_HUMAN", environment == EnvDevelopment),
		readTimeout:       getEnvDuration("READ_TIMEOUT", "15s"),
		writeTimeout:      getEnvDuration("WRITE_TIMEOUT", "15s"),
		idleTimeout:       getEnvDuration("IDLE_TIMEOUT", "60s"),
		shutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", "10s"),
		redisEnabled:      getEnvBool("REDIS_ENABLED", false),
		redisAddr:         getEnvString("REDIS_ADDR", "localhost:6379"),
		redisPassword:     getEnvString("REDIS_PASSWORD", ""),
		redisDB:           getEnvInt("REDIS_DB", 0),
		cacheTTL:          getEnvDuration("CACHE_TTL", "5m"),
		mapboxAccessToken: getEnvString("MAPBOX_ACCESS_TOKEN", ""),
		siteName:          getEnvString("SITE_NAME", "Happy Place"),
		siteURL:           getEnvString("SITE_URL", "http://localhost:8080"),
		previewEnabled:    getEnvBool("PREVIEW_ENABLED", environment == EnvDevelopment),
		previewDir:        getEnvString("PREVIEW_DIR", "previews"),
		rateLimitRPM:      getEnvInt("RATE_LIMIT_RPM", 300),
		inquiryRateLimit:  getEnvInt("INQUIRY_RATE_LIMIT", 5),
	}
}

func (c *AppConfig) GetServerPort() string { return c.serverPort }

func (c *AppConfig) GetDatabaseURL() string { return c.databaseURL }

func (c *AppConfig) GetEnvironment() string { return c.environment }

func (c *AppConfig) GetLogLevel() string { return c.logLevel }

// IsLogHumanReadable reports whether logs go to the console writer rather
// than JSON.
func (c *AppConfig) IsLogHumanReadable() bool { return c.logHuman }

// IsProduction returns true if the application is running in production environment.
func (c *AppConfig) IsProduction() bool {
	return c.environment == EnvProduction
}

func (c *AppConfig) GetReadTimeout() time.Duration { return c.readTimeout }

func (c *AppConfig) GetWriteTimeout() time.Duration { return c.writeTimeout }

func (c *AppConfig) GetIdleTimeout() time.Duration { return c.idleTimeout }

func (c *AppConfig) GetShutdownTimeout() time.Duration { return c.shutdownTimeout }

func (c *AppConfig) IsRedisEnabled() bool { return c.redisEnabled }

func (c *AppConfig) GetRedisAddr() string { return c.redisAddr }

func (c *AppConfig) GetRedisPassword() string { return c.redisPassword }

func (c *AppConfig) GetRedisDB() int { return c.redisDB }

// GetCacheTTL returns how long listing reads and fragments are cached. Zero
// disables caching.
func (c *AppConfig) GetCacheTTL() time.Duration { return c.cacheTTL }

func (c *AppConfig) GetMapboxAccessToken() string { return c.mapboxAccessToken }

func (c *AppConfig) GetSiteName() string { return c.siteName }

func (c *AppConfig) GetSiteURL() string { return c.siteURL }

// IsPreviewEnabled reports whether the component preview routes and live
// reload are served.
func (c *AppConfig) IsPreviewEnabled() bool { return c.previewEnabled }

func (c *AppConfig) GetPreviewDir() string { return c.previewDir }

// GetRateLimitRPM returns the per-client request budget per minute.
func (c *AppConfig) GetRateLimitRPM() int { return c.rateLimitRPM }

// GetInquiryRateLimit returns the per-client inquiry budget per minute.
func (c *AppConfig) GetInquiryRateLimit() int { return c.inquiryRateLimit }

// Validate checks if the configuration is valid.
func (c *AppConfig) Validate() error {
	check := struct {
		ServerPort       string `json:"SERVER_PORT" binding:"required,numeric"`
		DatabaseURL      string `json:"DATABASE_URL" binding:"required"`
		Environment      string `json:"ENVIRONMENT" binding:"oneof=development staging production"`
		LogLevel         string `json:"LOG_LEVEL" binding:"oneof=trace debug info warn error"`
		RedisAddr        string `json:"REDIS_ADDR" binding:"required,hostname_port"`
		RedisDB          int    `json:"REDIS_DB" binding:"gte=0,lte=15"`
		CacheTTL         int64  `json:"CACHE_TTL" binding:"gte=0"`
		SiteName         string `json:"SITE_NAME" binding:"required"`
		SiteURL          string `json:"SITE_URL" binding:"required,url"`
		RateLimitRPM     int    `json:"RATE_LIMIT_RPM" binding:"gte=1"`
		InquiryRateLimit int    `json:"INQUIRY_RATE_LIMIT" binding:"gte=1"`
	}{
		ServerPort:       c.serverPort,
		DatabaseURL:      c.databaseURL,
		Environment:      c.environment,
		LogLevel:         strings.ToLower(c.logLevel),
		RedisAddr:        c.redisAddr,
		RedisDB:          c.redisDB,
		CacheTTL:         int64(c.cacheTTL),
		SiteName:         c.siteName,
		SiteURL:          c.siteURL,
		RateLimitRPM:     c.rateLimitRPM,
		InquiryRateLimit: c.inquiryRateLimit,
	}
	return validation.ValidateStruct(check)
}

// Helper functions for environment variable parsing.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}
	return time.Second
}
