package identity_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/goliatone/go-identity"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testLogger struct{}

func (testLogger) Debug(string, ...any) {}
func (testLogger) Info(string, ...any)  {}
func (testLogger) Warn(string, ...any)  {}
func (testLogger) Error(string, ...any) {}

func testSigningKeyPEM(t *testing.T) string {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	return string(pem.EncodeToMemory(block))
}

func testOptions(t *testing.T) identity.Options {
	t.Helper()

	return identity.Options{
		SigningKey: testSigningKeyPEM(t),
		BcryptCost: bcrypt.MinCost,
	}
}

func newTestAuther(t *testing.T, repo identity.RepositoryManager) *identity.Auther {
	t.Helper()

	auther, err := identity.NewAuthenticator(repo, testOptions(t))
	require.NoError(t, err)

	return auther.WithLogger(testLogger{})
}

func hashFor(t *testing.T, password string) string {
	t.Helper()

	hash, err := identity.NewBcryptHasher(bcrypt.MinCost).HashPassword(password)
	require.NoError(t, err)
	return hash
}

func shortOptions(t *testing.T, ttl time.Duration) identity.Options {
	t.Helper()

	opts := testOptions(t)
	opts.UserTokenDuration = ttl
	opts.RenewalTokenDuration = ttl
	opts.Leeway = time.Millisecond
	return opts
}
