// Package config provides validation utilities for configuration values.
package config

import (
	"fmt"
	"strings"

	"github.com/polycache/polycache/pkg/cache"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	// Validate cache settings
	if _, err := cache.ParsePolicy(config.Cache.Policy); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("cache.policy must be one of: fifo, lifo, lru, mru, lfu (got: %s)", config.Cache.Policy))
	}
	if config.Cache.Capacity <= 0 {
		validationErrors = append(validationErrors, "cache.capacity must be positive")
	}

	// Validate database settings
	if config.Database.QueryTimeout < 0 {
		validationErrors = append(validationErrors, "database.query_timeout must be non-negative")
	}

	// Validate server settings
	if config.Server.ListenAddr == "" {
		validationErrors = append(validationErrors, "server.listen_addr cannot be empty")
	}
	if config.Server.ReadTimeout < 0 {
		validationErrors = append(validationErrors, "server.read_timeout must be non-negative")
	}
	if config.Server.WriteTimeout < 0 {
		validationErrors = append(validationErrors, "server.write_timeout must be non-negative")
	}
	if config.Server.ShutdownTimeout < 0 {
		validationErrors = append(validationErrors, "server.shutdown_timeout must be non-negative")
	}
	if config.Server.PageSize < 1 {
		validationErrors = append(validationErrors, "server.page_size must be at least 1")
	}

	// Validate logging settings
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got: %s)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
		// Valid
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.format must be one of: console, json (got: %s)", config.Logging.Format))
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(validationErrors, "\n- "))
	}

	return nil
}
