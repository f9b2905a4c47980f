package auth

import (
	"errors"
	"time"

	"inkwell/internal/auth/password"
	"inkwell/internal/auth/rate"
)

// Config carries everything the engine needs beyond its collaborators.
// Access and refresh tokens use independent secrets so a leak of one class
// does not compromise the other.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	Issuer   string
	Password password.Config
	Rate     rate.Config

	// ProductionMode tightens validation and marks refresh cookies Secure.
	ProductionMode bool
}

// DefaultConfig returns development defaults. Secrets are intentionally
// empty; Validate rejects the config until the caller supplies them.
func DefaultConfig() Config {
	return Config{
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Issuer:     "inkwell",
		Password:   password.DefaultConfig(),
		Rate:       rate.DefaultConfig(),
	}
}

// Validate checks the config before the engine is built.
func (c Config) Validate() error {
	if len(c.AccessSecret) < 32 {
		return errors.New("auth: AccessSecret must be >= 32 bytes")
	}
	if len(c.RefreshSecret) < 32 {
		return errors.New("auth: RefreshSecret must be >= 32 bytes")
	}
	if string(c.AccessSecret) == string(c.RefreshSecret) {
		return errors.New("auth: AccessSecret and RefreshSecret must differ")
	}
	if c.AccessTTL <= 0 {
		return errors.New("auth: AccessTTL must be > 0")
	}
	if c.RefreshTTL <= 0 {
		return errors.New("auth: RefreshTTL must be > 0")
	}
	if c.ProductionMode {
		if c.AccessTTL > time.Hour {
			return errors.New("auth: ProductionMode requires AccessTTL <= 1h")
		}
		if c.RefreshTTL > 30*24*time.Hour {
			return errors.New("auth: ProductionMode requires RefreshTTL <= 30d")
		}
	}
	return nil
}
