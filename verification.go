package identity

import (
	"context"

	"github.com/uptrace/bun"
)

// VerifyWithCode redeems a verification code: the joined user is flipped to
// verified and the code deleted as one logical operation. A missing or
// already consumed code reports ErrVerificationCodeNotFound; redeeming the
// same code twice fails the second time.
func (s *Auther) VerifyWithCode(ctx context.Context, code string) (*User, error) {
	record, err := s.repo.VerificationCodes().GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	var user *User
	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		if user, txErr = s.repo.Users().MarkVerifiedTx(ctx, tx, record.UserID); txErr != nil {
			return txErr
		}

		return s.repo.VerificationCodes().DeleteByUserIDTx(ctx, tx, record.UserID)
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}
