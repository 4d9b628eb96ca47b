package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultProviderOrigin is the origin used when no gogoanime host is configured.
const DefaultProviderOrigin = "https://animekai.to"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Provider ProviderConfig `mapstructure:"provider" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// ProviderConfig selects the origin the gogoanime provider scrapes.
type ProviderConfig struct {
	// GogoanimeURL is the host (optionally with scheme) of the provider origin.
	// Empty means DefaultProviderOrigin.
	GogoanimeURL string `mapstructure:"gogoanime_url"`
	AjaxURL      string `mapstructure:"ajax_url" validate:"required,url"`
}

// BaseURL returns the absolute provider origin. A bare host is served over https.
func (p ProviderConfig) BaseURL() string {
	host := strings.TrimRight(strings.TrimSpace(p.GogoanimeURL), "/")
	if host == "" {
		return DefaultProviderOrigin
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}

// CacheConfig enables the Redis backed provider cache when RedisHost is set.
type CacheConfig struct {
	RedisHost     string        `mapstructure:"redis_host"`
	RedisPort     int           `mapstructure:"redis_port" validate:"gte=0,lt=65536"`
	RedisPassword string        `mapstructure:"redis_password"`
	TTL           time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// Enabled reports whether a Redis host is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisHost != ""
}

// Addr returns the host:port address of the Redis server.
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
