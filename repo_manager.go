package identity

import (
	"context"
	"database/sql"
	"errors"
	"log"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Users() Users
	Permissions() Permissions
	UserPermissions() UserPermissions
	VerificationCodes() VerificationCodes
}

type mngr struct {
	db                *bun.DB
	users             Users
	permissions       Permissions
	userPermissions   UserPermissions
	verificationCodes VerificationCodes
}

// NewRepositoryManager wires every store against the given database.
func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:                db,
		users:             NewUsersRepository(db),
		permissions:       NewPermissionsRepository(db),
		userPermissions:   NewUserPermissionsRepository(db),
		verificationCodes: NewVerificationCodesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.permissions == nil {
		return errors.New("repository permissions should be initialized")
	}

	if m.userPermissions == nil {
		return errors.New("repository userPermissions should be initialized")
	}

	if m.verificationCodes == nil {
		return errors.New("repository verificationCodes should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Permissions() Permissions {
	return m.permissions
}

func (m mngr) UserPermissions() UserPermissions {
	return m.userPermissions
}

func (m mngr) VerificationCodes() VerificationCodes {
	return m.verificationCodes
}
