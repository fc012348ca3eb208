package auth

import (
	"fmt"

	"github.com/kbukum/loginauth/auth/password"
	"github.com/kbukum/loginauth/auth/token"
)

// Config holds all authentication configuration.
// It composes subpackage configs for loading from YAML/env via mapstructure.
type Config struct {
	// Token configures the token service.
	Token token.Config `mapstructure:"token"`

	// Password configures password hashing.
	Password password.Config `mapstructure:"password"`
}

// ApplyDefaults sets sensible defaults for the sub-configurations.
func (c *Config) ApplyDefaults() {
	c.Token.ApplyDefaults()
	c.Password.ApplyDefaults()
}

// Validate checks all sub-configurations.
func (c *Config) Validate() error {
	if err := c.Token.Validate(); err != nil {
		return fmt.Errorf("auth.token: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	return nil
}

// Describe returns a loggable summary. Secrets are never included.
func (c *Config) Describe() map[string]interface{} {
	return map[string]interface{}{
		"token_method":       string(c.Token.Method),
		"token_ttl":          c.Token.TTL.String(),
		"token_issuer":       c.Token.Issuer,
		"password_algorithm": string(c.Password.Algorithm),
	}
}
