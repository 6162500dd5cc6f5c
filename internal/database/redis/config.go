package redis

import "time"

// Config holds Redis connection and locking settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string
	// Prefix namespaces every key written by the store
	Prefix string

	PoolSize     int
	MinIdleConns int

	// LockTTL bounds how long a unit of work may hold a player's lock
	LockTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379/0",
		Prefix:       "nilters",
		PoolSize:     10,
		MinIdleConns: 2,
		LockTTL:      5 * time.Second,
	}
}
