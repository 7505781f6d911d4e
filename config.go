package identity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultIssuer is the iss claim stamped on every webtoken.
const DefaultIssuer = "authentication"

const (
	// DefaultUserTokenDuration is the lifetime of access tokens.
	DefaultUserTokenDuration = 48 * time.Hour
	// DefaultRenewalTokenDuration is the lifetime of renewal tokens.
	DefaultRenewalTokenDuration = 7 * 24 * time.Hour
	// DefaultLeeway is the clock-skew tolerance applied during verification.
	DefaultLeeway = 30 * time.Second
)

// Config holds the engine options. Implementations provide process-wide
// state explicitly so the engine stays testable with fixture keys.
type Config interface {
	// GetSigningKey returns the PEM encoded RSA private key used to sign
	// webtokens.
	GetSigningKey() string
	// GetVerifyingKey returns the PEM encoded RSA public key used to verify
	// webtokens. Empty derives the public key from the signing key.
	GetVerifyingKey() string
	GetIssuer() string
	GetUserTokenDuration() time.Duration
	GetRenewalTokenDuration() time.Duration
	GetLeeway() time.Duration
	GetBcryptCost() int
}

// Options is a concrete Config with sane defaults for zero fields.
type Options struct {
	SigningKey           string
	VerifyingKey         string
	Issuer               string
	UserTokenDuration    time.Duration
	RenewalTokenDuration time.Duration
	Leeway               time.Duration
	BcryptCost           int
}

var _ Config = Options{}

func (o Options) GetSigningKey() string { return o.SigningKey }

func (o Options) GetVerifyingKey() string { return o.VerifyingKey }

func (o Options) GetIssuer() string {
	if o.Issuer == "" {
		return DefaultIssuer
	}
	return o.Issuer
}

func (o Options) GetUserTokenDuration() time.Duration {
	if o.UserTokenDuration == 0 {
		return DefaultUserTokenDuration
	}
	return o.UserTokenDuration
}

func (o Options) GetRenewalTokenDuration() time.Duration {
	if o.RenewalTokenDuration == 0 {
		return DefaultRenewalTokenDuration
	}
	return o.RenewalTokenDuration
}

func (o Options) GetLeeway() time.Duration {
	if o.Leeway == 0 {
		return DefaultLeeway
	}
	return o.Leeway
}

func (o Options) GetBcryptCost() int {
	if o.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return o.BcryptCost
}
