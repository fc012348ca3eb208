package token

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod defines supported JWT signing algorithms.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
	RS256 SigningMethod = "RS256"
	RS384 SigningMethod = "RS384"
	RS512 SigningMethod = "RS512"
	ES256 SigningMethod = "ES256"
	ES384 SigningMethod = "ES384"
	ES512 SigningMethod = "ES512"
)

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 2 * time.Hour

// Config configures the token service. The signing material is loaded once
// at startup and never rotated during the process lifetime.
type Config struct {
	// Secret is the HMAC signing key (required for HS* methods).
	Secret string `mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `mapstructure:"method"`

	// PrivateKeyFile is a PEM file with the RSA or ECDSA private key (RS*/ES*).
	PrivateKeyFile string `mapstructure:"private_key_file"`

	// PublicKeyFile is a PEM file with the matching public key. Optional;
	// derived from the private key when empty.
	PublicKeyFile string `mapstructure:"public_key_file"`

	// PrivateKey is an already parsed *rsa.PrivateKey or *ecdsa.PrivateKey.
	// Takes precedence over PrivateKeyFile.
	PrivateKey interface{} `mapstructure:"-"`

	// Issuer is the "iss" claim (optional). When set, validation requires it.
	Issuer string `mapstructure:"issuer"`

	// Audience is the "aud" claim (optional). When set, validation requires it.
	Audience string `mapstructure:"audience"`

	// TTL is the lifetime of issued tokens (default: 2h).
	TTL time.Duration `mapstructure:"ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TTL == 0 {
		c.TTL = DefaultTTL
	}
}

// Validate checks required fields based on the signing method.
func (c *Config) Validate() error {
	if c.TTL < 0 {
		return fmt.Errorf("ttl must be positive (got: %s)", c.TTL)
	}
	switch c.Method {
	case HS256, HS384, HS512:
		if c.Secret == "" {
			return errors.New("secret is required for HMAC signing methods")
		}
	case RS256, RS384, RS512, ES256, ES384, ES512:
		if c.PrivateKey == nil && c.PrivateKeyFile == "" {
			return fmt.Errorf("private key is required for %s", c.Method)
		}
	default:
		return errors.New("unsupported signing method: " + string(c.Method))
	}
	return nil
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	case RS256:
		return gojwt.SigningMethodRS256
	case RS384:
		return gojwt.SigningMethodRS384
	case RS512:
		return gojwt.SigningMethodRS512
	case ES256:
		return gojwt.SigningMethodES256
	case ES384:
		return gojwt.SigningMethodES384
	case ES512:
		return gojwt.SigningMethodES512
	default:
		return gojwt.SigningMethodHS256
	}
}

// keys resolves the signing and verification keys for the configured method.
func (c *Config) keys() (sign interface{}, verify interface{}, err error) {
	switch c.Method {
	case HS256, HS384, HS512:
		secret := []byte(c.Secret)
		return secret, secret, nil
	case RS256, RS384, RS512:
		return c.rsaKeys()
	default:
		return c.ecdsaKeys()
	}
}

func (c *Config) rsaKeys() (interface{}, interface{}, error) {
	priv, ok := c.PrivateKey.(*rsa.PrivateKey)
	if c.PrivateKey == nil {
		pem, err := os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read private key: %w", err)
		}
		if priv, err = gojwt.ParseRSAPrivateKeyFromPEM(pem); err != nil {
			return nil, nil, fmt.Errorf("parse RSA private key: %w", err)
		}
	} else if !ok {
		return nil, nil, errors.New("private key must be *rsa.PrivateKey for RSA signing methods")
	}

	if c.PublicKeyFile == "" {
		return priv, &priv.PublicKey, nil
	}
	pem, err := os.ReadFile(c.PublicKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read public key: %w", err)
	}
	pub, err := gojwt.ParseRSAPublicKeyFromPEM(pem)
	if err != nil {
		return nil, nil, fmt.Errorf("parse RSA public key: %w", err)
	}
	return priv, pub, nil
}

func (c *Config) ecdsaKeys() (interface{}, interface{}, error) {
	priv, ok := c.PrivateKey.(*ecdsa.PrivateKey)
	if c.PrivateKey == nil {
		pem, err := os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read private key: %w", err)
		}
		if priv, err = gojwt.ParseECPrivateKeyFromPEM(pem); err != nil {
			return nil, nil, fmt.Errorf("parse ECDSA private key: %w", err)
		}
	} else if !ok {
		return nil, nil, errors.New("private key must be *ecdsa.PrivateKey for ECDSA signing methods")
	}

	if c.PublicKeyFile == "" {
		return priv, &priv.PublicKey, nil
	}
	pem, err := os.ReadFile(c.PublicKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read public key: %w", err)
	}
	pub, err := gojwt.ParseECPublicKeyFromPEM(pem)
	if err != nil {
		return nil, nil, fmt.Errorf("parse ECDSA public key: %w", err)
	}
	return priv, pub, nil
}
