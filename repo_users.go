package identity

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// VerifyUserSQL flips a user to verified. The ORM update path resets zero
// valued columns, so we keep this as raw SQL.
var VerifyUserSQL = `UPDATE "users" AS "usr"
SET
	"verified" = TRUE,
	"updated_at" = current_timestamp
WHERE
	"usr"."id" = ?
RETURNING *;`

// Users is the user store surface the engine consumes.
type Users interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	MarkVerified(ctx context.Context, id uuid.UUID) (*User, error)
	MarkVerifiedTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error)
	DeleteByUsername(ctx context.Context, username string) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository wires the generic repository with User handlers.
func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "username"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch user by id")
	}

	return record, nil
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch user by username")
	}

	return record, nil
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	prepareUserDefaults(user)

	record, err := a.Repository.CreateTx(ctx, tx, user)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create user")
	}

	return record, nil
}

func (a *users) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	res, err := a.db.NewUpdate().
		Model((*User)(nil)).
		Set("username = ?", username).
		Set("updated_at = current_timestamp").
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to update username")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrIdentityNotFound
	}

	return nil
}

func (a *users) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := a.db.NewUpdate().
		Model((*User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = current_timestamp").
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update password")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrIdentityNotFound
	}

	return nil
}

func (a *users) MarkVerified(ctx context.Context, id uuid.UUID) (*User, error) {
	return a.MarkVerifiedTx(ctx, a.db, id)
}

func (a *users) MarkVerifiedTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error) {
	res, err := a.Repository.RawTx(ctx, tx, VerifyUserSQL, id.String())
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to mark user verified")
	}

	if len(res) == 0 {
		return nil, ErrIdentityNotFound
	}

	return res[0], nil
}

func (a *users) DeleteByUsername(ctx context.Context, username string) error {
	_, err := a.db.NewDelete().
		Model((*User)(nil)).
		Where("?TableAlias.username = ?", username).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete user")
	}

	return nil
}

func prepareUserDefaults(user *User) {
	if user == nil {
		return
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
}
