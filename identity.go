package identity

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the read surface shared by every rung of the trust ladder.
type Identity interface {
	ID() string
	Username() string
	Verified() bool
}

// Authenticated is an identity proven correct by one confirmed check: a
// password comparison or a valid user token. It carries no proof that the
// password was checked within the current request, so it exposes no
// mutating capability.
type Authenticated struct {
	id       uuid.UUID
	username string
	verified bool
	svc      *Auther
}

// SessionIdentity is an identity whose password was verified within the
// current request. It is the only state from which mutation, deletion, and
// webtoken issuance are reachable.
type SessionIdentity struct {
	id       uuid.UUID
	username string
	verified bool
	svc      *Auther
}

// Admin is a verified identity that proved membership in the "admin"
// permission. It grants permission CRUD, arbitrary grants and revocations,
// and arbitrary user deletion.
type Admin struct {
	id       uuid.UUID
	username string
	verified bool
	svc      *Auther
}

var (
	_ Identity = (*Authenticated)(nil)
	_ Identity = (*SessionIdentity)(nil)
	_ Identity = (*Admin)(nil)
)

func (a *Authenticated) ID() string       { return a.id.String() }
func (a *Authenticated) Username() string { return a.username }
func (a *Authenticated) Verified() bool   { return a.verified }

func (a *SessionIdentity) ID() string       { return a.id.String() }
func (a *SessionIdentity) Username() string { return a.username }
func (a *SessionIdentity) Verified() bool   { return a.verified }

func (a *Admin) ID() string       { return a.id.String() }
func (a *Admin) Username() string { return a.username }
func (a *Admin) Verified() bool   { return a.verified }

// VerifyPassword proves password liveness for an already authenticated
// identity, upgrading it to a SessionIdentity. This is the composition
// used when a caller holds a bearer-derived identity and later collects
// the password.
func (a *Authenticated) VerifyPassword(ctx context.Context, password string) (*SessionIdentity, error) {
	user, err := a.svc.repo.Users().GetByID(ctx, a.id)
	if err != nil {
		return nil, err
	}

	if err := a.svc.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, err
	}

	return &SessionIdentity{
		id:       user.ID,
		username: user.Username,
		verified: user.Verified,
		svc:      a.svc,
	}, nil
}

// Authenticated widens the session identity, dropping the this-request
// proof.
func (a *SessionIdentity) Authenticated() *Authenticated {
	return &Authenticated{
		id:       a.id,
		username: a.username,
		verified: a.verified,
		svc:      a.svc,
	}
}

// UpdateUsername validates and persists a new username for this identity.
func (a *SessionIdentity) UpdateUsername(ctx context.Context, username string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}

	if err := a.svc.repo.Users().UpdateUsername(ctx, a.id, username); err != nil {
		return err
	}

	a.username = username
	return nil
}

// UpdatePassword validates the new password against the policy, hashes it,
// and persists the hash.
func (a *SessionIdentity) UpdatePassword(ctx context.Context, password string) error {
	if err := a.svc.policy.Validate(password); err != nil {
		return err
	}

	hash, err := a.svc.hasher.HashPassword(password)
	if err != nil {
		return err
	}

	return a.svc.repo.Users().UpdatePassword(ctx, a.id, hash)
}

// Delete removes this identity's account.
func (a *SessionIdentity) Delete(ctx context.Context) error {
	return a.svc.repo.Users().DeleteByUsername(ctx, a.username)
}

// CreateWebtoken issues the dual token pair for this identity. Unverified
// accounts cannot hold tokens.
func (a *SessionIdentity) CreateWebtoken(ctx context.Context) (*Webtoken, error) {
	if !a.verified {
		return nil, ErrNotVerified
	}

	return a.svc.createWebtoken(a.id, a.username)
}

// AsAdmin upgrades a verified identity to Admin by proving "admin"
// permission membership. A missing "admin" permission reports
// ErrPermissionNotFound, distinct from the denial for a user that simply
// lacks the grant.
func (s *Auther) AsAdmin(ctx context.Context, identity Identity) (*Admin, error) {
	id, err := uuid.Parse(identity.ID())
	if err != nil {
		return nil, ErrInvalidCredential
	}

	permission, err := s.repo.Permissions().GetByName(ctx, AdminPermission)
	if err != nil {
		return nil, err
	}

	if !s.hasPermission(ctx, id, permission) {
		return nil, ErrPermissionDenied
	}

	return &Admin{
		id:       id,
		username: identity.Username(),
		verified: identity.Verified(),
		svc:      s,
	}, nil
}
