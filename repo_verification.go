package identity

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// VerificationCodes is the verification code store surface. Codes are
// created alongside new users and consumed exactly once.
type VerificationCodes interface {
	CreateTx(ctx context.Context, tx bun.IDB, code *VerificationCode) (*VerificationCode, error)
	GetByCode(ctx context.Context, code string) (*VerificationCode, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*VerificationCode, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteByUserIDTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error
}

type verificationCodes struct {
	db *bun.DB
}

var _ VerificationCodes = (*verificationCodes)(nil)

// NewVerificationCodesRepository creates the bun-backed code store.
func NewVerificationCodesRepository(db *bun.DB) VerificationCodes {
	return &verificationCodes{db: db}
}

func (r *verificationCodes) CreateTx(ctx context.Context, tx bun.IDB, code *VerificationCode) (*VerificationCode, error) {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}

	_, err := tx.NewInsert().
		Model(code).
		Exec(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create verification code")
	}

	return code, nil
}

func (r *verificationCodes) GetByCode(ctx context.Context, code string) (*VerificationCode, error) {
	record := &VerificationCode{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.code = ?", code).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVerificationCodeNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch verification code")
	}

	return record, nil
}

func (r *verificationCodes) GetByUserID(ctx context.Context, userID uuid.UUID) (*VerificationCode, error) {
	record := &VerificationCode{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVerificationCodeNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch verification code")
	}

	return record, nil
}

func (r *verificationCodes) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.DeleteByUserIDTx(ctx, r.db, userID)
}

func (r *verificationCodes) DeleteByUserIDTx(ctx context.Context, tx bun.IDB, userID uuid.UUID) error {
	_, err := tx.NewDelete().
		Model((*VerificationCode)(nil)).
		Where("?TableAlias.user_id = ?", userID).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete verification code")
	}

	return nil
}
