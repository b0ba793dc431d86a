// Package config provides default configuration values for polycache.
package config

import (
	"time"
)

// Default configuration constants
const (
	// Cache defaults
	defaultPolicy   = "lru"
	defaultCapacity = 1024 // entries

	// Database defaults
	defaultQueryTimeoutSec = 30 // seconds

	// Server defaults
	defaultListenAddr         = "127.0.0.1:8080"
	defaultReadTimeoutSec     = 10 // seconds
	defaultWriteTimeoutSec    = 10 // seconds
	defaultShutdownTimeoutSec = 5  // seconds
	defaultPageSize           = 10 // items per /keys page
)

// DefaultConfig returns the default configuration values for polycache.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Policy:   defaultPolicy,
			Capacity: defaultCapacity,
		},
		Database: DatabaseConfig{
			QueryTimeout: time.Second * defaultQueryTimeoutSec,
		},
		Server: ServerConfig{
			ListenAddr:      defaultListenAddr,
			ReadTimeout:     time.Second * defaultReadTimeoutSec,
			WriteTimeout:    time.Second * defaultWriteTimeoutSec,
			ShutdownTimeout: time.Second * defaultShutdownTimeoutSec,
			PageSize:        defaultPageSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
