package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the conventional, unprefixed environment
// variable names the service has always been deployed with.
var envBindings = map[string]string{
	"server.port":            "PORT",
	"server.log_level":       "LOG_LEVEL",
	"provider.gogoanime_url": "GOGOANIME_URL",
	"provider.ajax_url":      "GOGOANIME_AJAX_URL",
	"cache.redis_host":       "REDIS_HOST",
	"cache.redis_port":       "REDIS_PORT",
	"cache.redis_password":   "REDIS_PASSWORD",
	"cache.ttl":              "CACHE_TTL",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("provider.gogoanime_url", "")
	v.SetDefault("provider.ajax_url", "https://ajax.gogocdn.net")
	v.SetDefault("cache.redis_host", "")
	v.SetDefault("cache.redis_port", 6379)
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.ttl", "1h")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
