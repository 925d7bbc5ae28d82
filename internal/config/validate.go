package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.RemoteConfigured() {
		// Remote mode carries real accounts, so the session gate must be
		// usable: HS256 needs a secret of at least 32 characters.
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("auth.jwt_secret must be at least 32 characters when a database is configured (got %d)", len(c.Auth.JWTSecret))
		}
	} else if c.Local.Path == "" {
		return fmt.Errorf("local.path must be set when no database is configured")
	}

	if c.Auth.BCryptCost < 4 || c.Auth.BCryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31 (got %d)", c.Auth.BCryptCost)
	}

	if c.Garden.NotificationTTL <= 0 {
		return fmt.Errorf("garden.notification_ttl must be positive (got %v)", c.Garden.NotificationTTL)
	}

	if c.Reminder.RecheckPeriod <= 0 {
		return fmt.Errorf("reminder.recheck_period must be positive (got %v)", c.Reminder.RecheckPeriod)
	}

	return nil
}
