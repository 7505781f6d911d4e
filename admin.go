package identity

import (
	"context"

	"github.com/uptrace/bun"
)

// GivePermission grants the named permission to the target user. Granting
// an already held permission reports ErrDuplicateGrant.
func (a *Admin) GivePermission(ctx context.Context, username, permission string) error {
	target, err := a.svc.repo.Users().GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	record, err := a.svc.repo.Permissions().GetByName(ctx, permission)
	if err != nil {
		return err
	}

	_, err = a.svc.repo.UserPermissions().Grant(ctx, target.ID, record.ID)
	return err
}

// RevokePermission removes the named permission from the target user.
// Revoking a grant that does not exist is not an error.
func (a *Admin) RevokePermission(ctx context.Context, username, permission string) error {
	target, err := a.svc.repo.Users().GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	record, err := a.svc.repo.Permissions().GetByName(ctx, permission)
	if err != nil {
		return err
	}

	return a.svc.repo.UserPermissions().Revoke(ctx, target.ID, record.ID)
}

// CreatePermission registers a new named permission.
func (a *Admin) CreatePermission(ctx context.Context, name string) (*Permission, error) {
	if err := ValidatePermissionName(name); err != nil {
		return nil, err
	}

	return a.svc.repo.Permissions().Create(ctx, name)
}

// DeletePermission removes a named permission.
func (a *Admin) DeletePermission(ctx context.Context, name string) error {
	return a.svc.repo.Permissions().DeleteByName(ctx, name)
}

// DeleteUser removes any user by username.
func (a *Admin) DeleteUser(ctx context.Context, username string) error {
	return a.svc.repo.Users().DeleteByUsername(ctx, username)
}

// VerifyUser force-verifies an account without its code, deleting any
// outstanding verification code so it cannot be redeemed later.
func (a *Admin) VerifyUser(ctx context.Context, username string) error {
	target, err := a.svc.repo.Users().GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	return a.svc.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := a.svc.repo.Users().MarkVerifiedTx(ctx, tx, target.ID); err != nil {
			return err
		}

		return a.svc.repo.VerificationCodes().DeleteByUserIDTx(ctx, tx, target.ID)
	})
}
