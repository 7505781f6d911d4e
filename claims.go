package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token subjects. A token signed for one purpose must never verify under
// the other's predicate.
const (
	SubjectUser    = "user"
	SubjectRenewal = "renewal"
)

// Claims is the payload carried by both halves of a Webtoken.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// NewClaims builds the claim set for a token of the given subject and
// lifetime.
func NewClaims(userID uuid.UUID, username, subject, issuer string, ttl time.Duration) *Claims {
	now := time.Now()

	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
	}
}
