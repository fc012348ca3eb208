package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Algorithm names a hashing scheme.
type Algorithm string

const (
	AlgorithmBcrypt   Algorithm = "bcrypt"
	AlgorithmArgon2id Algorithm = "argon2id"
)

// Argon2id defaults, per the OWASP password storage cheat sheet.
const (
	defaultArgon2Time    = 1
	defaultArgon2Memory  = 64 * 1024 // KiB
	defaultArgon2Threads = 4
)

// Config selects and tunes the password hasher.
type Config struct {
	// Algorithm is bcrypt (default) or argon2id.
	Algorithm Algorithm `yaml:"algorithm" mapstructure:"algorithm"`

	BcryptCost int `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`

	Argon2Time    uint32 `yaml:"argon2_time" mapstructure:"argon2_time"`
	Argon2Memory  uint32 `yaml:"argon2_memory" mapstructure:"argon2_memory"` // KiB
	Argon2Threads uint8  `yaml:"argon2_threads" mapstructure:"argon2_threads"`
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmBcrypt
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
	if c.Argon2Time == 0 {
		c.Argon2Time = defaultArgon2Time
	}
	if c.Argon2Memory == 0 {
		c.Argon2Memory = defaultArgon2Memory
	}
	if c.Argon2Threads == 0 {
		c.Argon2Threads = defaultArgon2Threads
	}
}

// Validate checks the parameters of the selected algorithm.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmBcrypt:
		if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
			return fmt.Errorf("bcrypt_cost must be between %d and %d (got: %d)", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
		}
	case AlgorithmArgon2id:
		// argon2 requires at least 8 KiB of memory per lane.
		if c.Argon2Memory < 8*uint32(c.Argon2Threads) {
			return fmt.Errorf("argon2_memory must be at least 8 KiB per thread (got: %d KiB for %d threads)", c.Argon2Memory, c.Argon2Threads)
		}
	default:
		return fmt.Errorf("unsupported algorithm: %q (use bcrypt or argon2id)", c.Algorithm)
	}
	return nil
}

// NewHasher builds the Hasher the configuration selects.
func NewHasher(cfg Config) Hasher {
	cfg.ApplyDefaults()
	if cfg.Algorithm == AlgorithmArgon2id {
		return NewArgon2Hasher(
			WithArgon2Time(cfg.Argon2Time),
			WithArgon2Memory(cfg.Argon2Memory),
			WithArgon2Threads(cfg.Argon2Threads),
		)
	}
	return NewBcryptHasher(WithCost(cfg.BcryptCost))
}
