package identity

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenSigner signs claims with a process-wide RSA private key and verifies
// them with the matching public key. Verification enforces issuer, subject
// and expiration with a fixed leeway.
type TokenSigner struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
	issuer  string
	leeway  time.Duration
	logger  Logger
}

// NewTokenSigner parses the configured PEM key material. When no verifying
// key is configured the public half of the signing key is used.
func NewTokenSigner(cfg Config) (*TokenSigner, error) {
	private, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.GetSigningKey()))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to parse signing key")
	}

	public := &private.PublicKey
	if pem := cfg.GetVerifyingKey(); pem != "" {
		public, err = jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to parse verifying key")
		}
	}

	return &TokenSigner{
		private: private,
		public:  public,
		issuer:  cfg.GetIssuer(),
		leeway:  cfg.GetLeeway(),
		logger:  defLogger{},
	}, nil
}

// WithLogger sets the signer logger.
func (ts *TokenSigner) WithLogger(logger Logger) *TokenSigner {
	if logger != nil {
		ts.logger = logger
	}
	return ts
}

// Issuer returns the iss claim the signer stamps and enforces.
func (ts *TokenSigner) Issuer() string {
	return ts.issuer
}

// Sign produces the signed compact form of claims.
func (ts *TokenSigner) Sign(claims *Claims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS512, claims)

	signed, err := token.SignedString(ts.private)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign webtoken")
	}

	return signed, nil
}

// Verify parses and validates a token, requiring the configured issuer and
// the given subject. Expired tokens return ErrTokenExpired; every other
// failure, including a subject or issuer mismatch on an otherwise
// well-formed token, returns ErrTokenInvalid.
func (ts *TokenSigner) Verify(tokenString, subject string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			ts.logger.Error("token verify encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.public, nil
	},
		jwt.WithIssuer(ts.issuer),
		jwt.WithSubject(subject),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(ts.leeway),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenInvalid.Category, ErrTokenInvalid.Message).
			WithTextCode(ErrTokenInvalid.TextCode)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenSigner verify could not decode claims")
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
