package identity

import (
	"context"

	"github.com/google/uuid"
)

// HasPermission reports whether the user holds the named permission. The
// check fails closed: any store failure, including an unreachable store or
// a missing permission, returns false. The swallowed error is logged so an
// outage remains distinguishable from genuine absence in the logs, never
// in the result.
func (s *Auther) HasPermission(ctx context.Context, identity Identity, permission string) bool {
	id, err := uuid.Parse(identity.ID())
	if err != nil {
		return false
	}

	record, err := s.repo.Permissions().GetByName(ctx, permission)
	if err != nil {
		s.logger.Warn("permission lookup failed for %q: %v", permission, err)
		return false
	}

	return s.hasPermission(ctx, id, record)
}

func (s *Auther) hasPermission(ctx context.Context, userID uuid.UUID, permission *Permission) bool {
	exists, err := s.repo.UserPermissions().Exists(ctx, userID, permission.ID)
	if err != nil {
		s.logger.Warn("permission membership check failed for %q: %v", permission.Name, err)
		return false
	}

	return exists
}

// FindPermission returns the named permission or ErrPermissionNotFound.
func (s *Auther) FindPermission(ctx context.Context, name string) (*Permission, error) {
	return s.repo.Permissions().GetByName(ctx, name)
}
