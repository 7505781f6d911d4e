package identity

import (
	"context"

	"github.com/google/uuid"
)

// Webtoken is the dual token pair issued after a live password check.
// Neither half is persisted; the pair is the entire session state.
type Webtoken struct {
	UserToken    string `json:"user_token"`
	RenewalToken string `json:"renewal_token"`
}

func (s *Auther) createWebtoken(userID uuid.UUID, username string) (*Webtoken, error) {
	userToken, err := s.signer.Sign(NewClaims(userID, username, SubjectUser, s.issuer, s.userTTL))
	if err != nil {
		return nil, err
	}

	renewalToken, err := s.signer.Sign(NewClaims(userID, username, SubjectRenewal, s.issuer, s.renewalTTL))
	if err != nil {
		return nil, err
	}

	return &Webtoken{
		UserToken:    userToken,
		RenewalToken: renewalToken,
	}, nil
}

// Renew verifies a renewal token and issues a brand-new pair. The account
// is re-fetched: a deleted or no longer verified user cannot renew, even
// while the token itself is still cryptographically valid. The consumed
// token and its sibling user token are not revoked; they lapse at their
// natural expiration.
func (s *Auther) Renew(ctx context.Context, renewalToken string) (*Webtoken, error) {
	claims, err := s.signer.Verify(renewalToken, SubjectRenewal)
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

	return s.createWebtoken(user.ID, user.Username)
}
