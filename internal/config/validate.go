package config

import (
	"fmt"

	"github.com/adhocore/gronx"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be within 4..31 (got %d)", c.Auth.PasswordHashCost)
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for store driver %q", c.Store.Driver)
		}
	case StoreDriverFirestore:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for users and tokens")
		}
		if c.Firestore.ProjectID == "" {
			return fmt.Errorf("firestore.project_id is required for store driver %q", c.Store.Driver)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("store.driver must be one of postgres, firestore, memory (got %q)", c.Store.Driver)
	}

	if c.Feed.Limit <= 0 || c.Feed.Limit > 500 {
		return fmt.Errorf("feed.limit must be within 1..500 (got %d)", c.Feed.Limit)
	}
	if c.Feed.ScanLimit <= 0 {
		return fmt.Errorf("feed.scan_limit must be > 0 (got %d)", c.Feed.ScanLimit)
	}

	if c.RateLimit.AuthPerMinute <= 0 {
		return fmt.Errorf("rate_limit.auth_per_minute must be > 0 (got %d)", c.RateLimit.AuthPerMinute)
	}

	if c.Janitor.Enabled && !gronx.IsValid(c.Janitor.Cron) {
		return fmt.Errorf("janitor.cron is not a valid cron expression: %q", c.Janitor.Cron)
	}

	return nil
}
