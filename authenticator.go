package identity

import (
	"context"
	"time"
)

// Auther is the identity engine. It authenticates credentials, escalates
// trust, issues webtokens, and owns the registration, verification, and
// permission flows. Construct one per process with NewAuthenticator.
type Auther struct {
	repo       RepositoryManager
	signer     *TokenSigner
	hasher     PasswordAuthenticator
	policy     *PasswordPolicy
	dispatcher Dispatcher
	issuer     string
	userTTL    time.Duration
	renewalTTL time.Duration
	logger     Logger
}

// NewAuthenticator returns a new Auther. It fails when the configured key
// material cannot be parsed.
func NewAuthenticator(repo RepositoryManager, opts Config) (*Auther, error) {
	signer, err := NewTokenSigner(opts)
	if err != nil {
		return nil, err
	}

	return &Auther{
		repo:       repo,
		signer:     signer,
		hasher:     NewBcryptHasher(opts.GetBcryptCost()),
		policy:     NewPasswordPolicy(),
		dispatcher: noopDispatcher{},
		issuer:     opts.GetIssuer(),
		userTTL:    opts.GetUserTokenDuration(),
		renewalTTL: opts.GetRenewalTokenDuration(),
		logger:     defLogger{},
	}, nil
}

// WithLogger sets the engine logger.
func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
		s.signer.WithLogger(logger)
	}
	return s
}

// WithDispatcher configures the job dispatcher used for post-registration
// notifications. Dispatch is fire-and-forget; failures are logged and
// swallowed.
func (s *Auther) WithDispatcher(dispatcher Dispatcher) *Auther {
	s.dispatcher = normalizeDispatcher(dispatcher)
	return s
}

// WithPasswordAuthenticator overrides the password hasher.
func (s *Auther) WithPasswordAuthenticator(hasher PasswordAuthenticator) *Auther {
	if hasher != nil {
		s.hasher = hasher
	}
	return s
}

// TokenSigner returns the signer used by this engine.
func (s *Auther) TokenSigner() *TokenSigner {
	return s.signer
}

// Authenticate verifies any credential shape and returns an Authenticated
// snapshot. A bearer token is accepted here: the signature proves a prior
// password check, but not one within this request. Password-bearing shapes
// are delegated to AuthenticateSession and widened.
func (s *Auther) Authenticate(ctx context.Context, cred Credential) (*Authenticated, error) {
	switch c := cred.(type) {
	case TokenCredential:
		return s.authenticateToken(ctx, c.Token)
	case SessionCredential:
		session, err := s.AuthenticateSession(ctx, c)
		if err != nil {
			return nil, err
		}
		return session.Authenticated(), nil
	default:
		s.logger.Error("Authenticate received unknown credential shape")
		return nil, ErrInvalidCredential
	}
}

// AuthenticateSession verifies a password-bearing credential and returns a
// SessionIdentity, the only state exposing mutation and token issuance.
// The input type already excludes bearer-only credentials; callers holding
// a widened Credential must go through Authenticate.
func (s *Auther) AuthenticateSession(ctx context.Context, cred SessionCredential) (*SessionIdentity, error) {
	switch c := cred.(type) {
	case UserPassCredential:
		return s.sessionFromUserPass(ctx, c.Username, c.Password)
	case TokenPassCredential:
		return s.sessionFromTokenPass(ctx, c.Token, c.Password)
	default:
		s.logger.Error("AuthenticateSession received unknown credential shape")
		return nil, ErrInvalidCredential
	}
}

func (s *Auther) authenticateToken(ctx context.Context, token string) (*Authenticated, error) {
	claims, err := s.signer.Verify(token, SubjectUser)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if !user.Verified {
		return nil, ErrNotVerified
	}

	return &Authenticated{
		id:       user.ID,
		username: user.Username,
		verified: user.Verified,
		svc:      s,
	}, nil
}

func (s *Auther) sessionFromUserPass(ctx context.Context, username, password string) (*SessionIdentity, error) {
	user, err := s.repo.Users().GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, err
	}

	return &SessionIdentity{
		id:       user.ID,
		username: user.Username,
		verified: user.Verified,
		svc:      s,
	}, nil
}

func (s *Auther) sessionFromTokenPass(ctx context.Context, token, password string) (*SessionIdentity, error) {
	claims, err := s.signer.Verify(token, SubjectUser)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, err
	}

	return &SessionIdentity{
		id:       user.ID,
		username: user.Username,
		verified: user.Verified,
		svc:      s,
	}, nil
}
