package identity

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Permissions is the permission store surface the engine consumes.
type Permissions interface {
	Create(ctx context.Context, name string) (*Permission, error)
	GetByName(ctx context.Context, name string) (*Permission, error)
	DeleteByName(ctx context.Context, name string) error
}

// UserPermissions manages grant rows. The (user, permission) pair is unique
// and its existence is the sole source of truth for membership.
type UserPermissions interface {
	Grant(ctx context.Context, userID, permissionID uuid.UUID) (*UserPermission, error)
	Revoke(ctx context.Context, userID, permissionID uuid.UUID) error
	Exists(ctx context.Context, userID, permissionID uuid.UUID) (bool, error)
}

type permissions struct {
	db *bun.DB
}

var _ Permissions = (*permissions)(nil)

// NewPermissionsRepository creates the bun-backed permission store.
func NewPermissionsRepository(db *bun.DB) Permissions {
	return &permissions{db: db}
}

func (r *permissions) Create(ctx context.Context, name string) (*Permission, error) {
	record := &Permission{
		ID:   uuid.New(),
		Name: name,
	}

	_, err := r.db.NewInsert().
		Model(record).
		Exec(ctx)

	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicatePermission
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create permission")
	}

	return record, nil
}

func (r *permissions) GetByName(ctx context.Context, name string) (*Permission, error) {
	record := &Permission{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPermissionNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to fetch permission")
	}

	return record, nil
}

func (r *permissions) DeleteByName(ctx context.Context, name string) error {
	_, err := r.db.NewDelete().
		Model((*Permission)(nil)).
		Where("?TableAlias.name = ?", name).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete permission")
	}

	return nil
}

type userPermissions struct {
	db *bun.DB
}

var _ UserPermissions = (*userPermissions)(nil)

// NewUserPermissionsRepository creates the bun-backed grant store.
func NewUserPermissionsRepository(db *bun.DB) UserPermissions {
	return &userPermissions{db: db}
}

func (r *userPermissions) Grant(ctx context.Context, userID, permissionID uuid.UUID) (*UserPermission, error) {
	record := &UserPermission{
		ID:           uuid.New(),
		UserID:       userID,
		PermissionID: permissionID,
	}

	_, err := r.db.NewInsert().
		Model(record).
		Exec(ctx)

	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateGrant
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to grant permission")
	}

	return record, nil
}

// Revoke deletes the matching grant. Revoking a grant that does not exist
// is not an error.
func (r *userPermissions) Revoke(ctx context.Context, userID, permissionID uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*UserPermission)(nil)).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.permission_id = ?", permissionID).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to revoke permission")
	}

	return nil
}

func (r *userPermissions) Exists(ctx context.Context, userID, permissionID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*UserPermission)(nil)).
		Where("?TableAlias.user_id = ?", userID).
		Where("?TableAlias.permission_id = ?", permissionID).
		Exists(ctx)

	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to check permission membership")
	}

	return exists, nil
}
