package config

import (
	"errors"
	"fmt"
	"strings"
)

var validDrivers = map[string]bool{
	DriverPostgres: true,
	DriverSQLite:   true,
	DriverRedis:    true,
	DriverMemory:   true,
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks field values and cross-field requirements of the chosen driver.
// All problems are reported together.
func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)

	var errs []error
	if !validDrivers[c.StoreDriver] {
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q must be one of postgres, sqlite, redis, memory", c.StoreDriver))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel))
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be json or text", c.LogFormat))
	}
	if c.LeaderboardSize <= 0 {
		errs = append(errs, fmt.Errorf("LEADERBOARD_SIZE must be positive, got %d", c.LeaderboardSize))
	}

	switch c.StoreDriver {
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
			errs = append(errs, errors.New("postgres driver requires DB_HOST, DB_NAME and DB_USER"))
		}
		if c.DBMaxConns <= 0 {
			errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("sqlite driver requires SQLITE_PATH"))
		}
	case DriverRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("redis driver requires REDIS_URL"))
		}
		if c.RedisLockTTL <= 0 {
			errs = append(errs, fmt.Errorf("REDIS_LOCK_TTL must be positive, got %s", c.RedisLockTTL))
		}
	}

	return errors.Join(errs...)
}

// Warnings lists settings that are legal but risky for the environment.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.APIKey == "" {
		warnings = append(warnings, "API_KEY is not set; the JSON API is unauthenticated")
	}
	if c.Environment == EnvProduction && c.StoreDriver == DriverMemory {
		warnings = append(warnings, "memory store in production loses all state on restart")
	}
	if c.StoreDriver == DriverPostgres && c.DBPassword == "postgres" {
		warnings = append(warnings, "DB_PASSWORD is the default value")
	}
	return warnings
}
