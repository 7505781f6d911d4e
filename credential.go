package identity

// Credential is the closed set of proof-of-identity inputs. Credentials are
// ephemeral and never persisted.
//
// The set is sealed: only UserPassCredential, TokenCredential, and
// TokenPassCredential implement it. Entry points switch over it
// exhaustively.
type Credential interface {
	credential()
}

// SessionCredential is the subset of credentials that carry a password.
// Only these can produce a SessionIdentity: password liveness must be
// proven within the current request for any mutating capability, so the
// narrowing is part of the type, not a runtime branch.
type SessionCredential interface {
	Credential
	sessionCredential()
}

// UserPassCredential is a username plus cleartext password.
type UserPassCredential struct {
	Username string
	Password string
}

// TokenCredential is a bearer user token on its own. It can authenticate,
// but never open a session.
type TokenCredential struct {
	Token string
}

// TokenPassCredential is a bearer user token accompanied by the cleartext
// password, proving both possession and liveness.
type TokenPassCredential struct {
	Token    string
	Password string
}

func (UserPassCredential) credential()  {}
func (TokenCredential) credential()     {}
func (TokenPassCredential) credential() {}

func (UserPassCredential) sessionCredential()  {}
func (TokenPassCredential) sessionCredential() {}

var (
	_ SessionCredential = UserPassCredential{}
	_ Credential        = TokenCredential{}
	_ SessionCredential = TokenPassCredential{}
)

// AsSessionCredential narrows a widened credential for callers that parse
// requests into the full union, e.g. a transport layer. Bearer-only input
// is rejected with ErrInvalidCredential regardless of token validity.
func AsSessionCredential(cred Credential) (SessionCredential, error) {
	if sc, ok := cred.(SessionCredential); ok {
		return sc, nil
	}
	return nil, ErrInvalidCredential
}
