package identity

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// verificationCodeLength matches the historical 30 character codes.
const verificationCodeLength = 30

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Register creates a new user and exactly one verification code for it in
// a single transaction, then fires the verification mail notification.
// The dispatch result is ignored; a failed send trades delivery for a
// non-blocking registration.
func (s *Auther) Register(ctx context.Context, username, password string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	if err := s.policy.Validate(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		if user, txErr = s.repo.Users().RegisterTx(ctx, tx, user); txErr != nil {
			return txErr
		}

		code, txErr := newVerificationCode(user.ID)
		if txErr != nil {
			return txErr
		}

		_, txErr = s.repo.VerificationCodes().CreateTx(ctx, tx, code)
		return txErr
	})

	if err != nil {
		var rich *goerrors.Error
		if goerrors.As(err, &rich) {
			return nil, rich
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	s.notify(ctx, VerificationMailMessage{UserID: user.ID})

	return user, nil
}

// notify dispatches fire-and-forget; errors are logged, never surfaced.
func (s *Auther) notify(ctx context.Context, msg Message) {
	dispatcher := normalizeDispatcher(s.dispatcher)
	if err := dispatcher.Dispatch(ctx, msg); err != nil {
		s.logger.Warn("dispatcher error for %s: %v", msg.Type(), err)
	}
}

func newVerificationCode(userID uuid.UUID) (*VerificationCode, error) {
	code, err := randomCode(verificationCodeLength)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate verification code")
	}

	return &VerificationCode{
		Code:   code,
		UserID: userID,
	}, nil
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))

	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}

	return string(buf), nil
}
