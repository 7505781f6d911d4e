package identity_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, opts identity.Options) *identity.TokenSigner {
	t.Helper()

	signer, err := identity.NewTokenSigner(opts)
	require.NoError(t, err)

	return signer.WithLogger(testLogger{})
}

func TestNewTokenSignerRejectsBadKeyMaterial(t *testing.T) {
	_, err := identity.NewTokenSigner(identity.Options{SigningKey: "not a pem"})
	require.Error(t, err)
}

func TestTokenSignerRoundTrip(t *testing.T) {
	signer := newTestSigner(t, testOptions(t))

	userID := uuid.New()
	signed, err := signer.Sign(identity.NewClaims(userID, "ana", identity.SubjectUser, signer.Issuer(), time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := signer.Verify(signed, identity.SubjectUser)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, identity.DefaultIssuer, claims.Issuer)
	assert.Equal(t, identity.SubjectUser, claims.Subject)
}

func TestTokenSignerRejectsWrongSubject(t *testing.T) {
	signer := newTestSigner(t, testOptions(t))

	renewal, err := signer.Sign(identity.NewClaims(uuid.New(), "ana", identity.SubjectRenewal, signer.Issuer(), time.Hour))
	require.NoError(t, err)

	// A renewal token must never verify under the user predicate, nor the
	// other way around.
	_, err = signer.Verify(renewal, identity.SubjectUser)
	assert.ErrorContains(t, err, "token is invalid")

	user, err := signer.Sign(identity.NewClaims(uuid.New(), "ana", identity.SubjectUser, signer.Issuer(), time.Hour))
	require.NoError(t, err)

	_, err = signer.Verify(user, identity.SubjectRenewal)
	assert.ErrorContains(t, err, "token is invalid")
}

func TestTokenSignerRejectsWrongIssuer(t *testing.T) {
	signer := newTestSigner(t, testOptions(t))

	signed, err := signer.Sign(identity.NewClaims(uuid.New(), "ana", identity.SubjectUser, "someone-else", time.Hour))
	require.NoError(t, err)

	_, err = signer.Verify(signed, identity.SubjectUser)
	assert.ErrorContains(t, err, "token is invalid")
}

func TestTokenSignerExpiredToken(t *testing.T) {
	signer := newTestSigner(t, shortOptions(t, time.Hour))

	signed, err := signer.Sign(identity.NewClaims(uuid.New(), "ana", identity.SubjectUser, signer.Issuer(), -time.Hour))
	require.NoError(t, err)

	_, err = signer.Verify(signed, identity.SubjectUser)
	assert.ErrorIs(t, err, identity.ErrTokenExpired)
}

func TestTokenSignerRejectsForeignKey(t *testing.T) {
	signer := newTestSigner(t, testOptions(t))
	other := newTestSigner(t, testOptions(t))

	signed, err := other.Sign(identity.NewClaims(uuid.New(), "ana", identity.SubjectUser, other.Issuer(), time.Hour))
	require.NoError(t, err)

	_, err = signer.Verify(signed, identity.SubjectUser)
	assert.ErrorContains(t, err, "token is invalid")
}

func TestTokenSignerRejectsGarbage(t *testing.T) {
	signer := newTestSigner(t, testOptions(t))

	_, err := signer.Verify("definitely.not.a-token", identity.SubjectUser)
	assert.ErrorContains(t, err, "token is invalid")
}

func TestTokenSignerRejectsNilClaims(t *testing.T) {
	signer := newTestSigner(t, testOptions(t))

	_, err := signer.Sign(nil)
	assert.Error(t, err)
}
