package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/engine"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Provider ProviderConfig
	Engine   engine.Options
	CORS     CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	PoolMin  int
	PoolMax  int
}

// RedisConfig holds Redis connection configuration for the data cache
// and the credit meter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// ProviderConfig holds the metered property-data provider settings.
type ProviderConfig struct {
	BaseURL             string
	APIKey              string
	Timeout             time.Duration
	MonthlyCreditBudget int
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// Load reads configuration from environment variables. It uses viper to
// read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "dealsourcing")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL_HOURS", 24)
	v.SetDefault("PROPERTYDATA_BASE_URL", "https://api.propertydata.co.uk")
	v.SetDefault("PROPERTYDATA_TIMEOUT_SECONDS", 10)
	v.SetDefault("PROPERTYDATA_MONTHLY_CREDITS", 1000)
	v.SetDefault("SEARCH_RADIUS_MILES", engine.DefaultSearchRadiusMiles)
	v.SetDefault("MAX_COMPARABLES", engine.DefaultMaxResults)
	v.SetDefault("MAX_COMPARABLE_AGE_MONTHS", engine.DefaultMaxAgeMonths)
	v.SetDefault("BEDROOM_TOLERANCE", engine.DefaultBedroomTolerance)
	v.SetDefault("MIN_CONFIDENCE_SCORE", engine.DefaultMinConfidenceScore)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			PoolMin:  v.GetInt("DB_POOL_MIN"),
			PoolMax:  v.GetInt("DB_POOL_MAX"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: time.Duration(v.GetInt("CACHE_TTL_HOURS")) * time.Hour,
		},
		Provider: ProviderConfig{
			BaseURL:             v.GetString("PROPERTYDATA_BASE_URL"),
			APIKey:              v.GetString("PROPERTYDATA_API_KEY"),
			Timeout:             time.Duration(v.GetInt("PROPERTYDATA_TIMEOUT_SECONDS")) * time.Second,
			MonthlyCreditBudget: v.GetInt("PROPERTYDATA_MONTHLY_CREDITS"),
		},
		Engine: engine.Options{
			SearchRadiusMiles:  v.GetFloat64("SEARCH_RADIUS_MILES"),
			MaxResults:         v.GetInt("MAX_COMPARABLES"),
			MaxAgeMonths:       v.GetInt("MAX_COMPARABLE_AGE_MONTHS"),
			BedroomTolerance:   v.GetInt("BEDROOM_TOLERANCE"),
			MinConfidenceScore: v.GetFloat64("MIN_CONFIDENCE_SCORE"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
// Engine policy violations are rejected here, before any calculation runs.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if c.Database.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if c.Database.PoolMin > c.Database.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	if c.Redis.CacheTTL < time.Hour {
		return fmt.Errorf("CACHE_TTL_HOURS must be at least 1")
	}

	if c.Provider.BaseURL == "" {
		return fmt.Errorf("PROPERTYDATA_BASE_URL is required")
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("PROPERTYDATA_TIMEOUT_SECONDS must be positive")
	}
	if c.Provider.MonthlyCreditBudget < 0 {
		return fmt.Errorf("PROPERTYDATA_MONTHLY_CREDITS must be non-negative")
	}

	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine options: %w", err)
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
