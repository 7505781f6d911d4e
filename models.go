package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AdminPermission is the permission name that gates administrative
// operations.
const AdminPermission = "admin"

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Verified      bool       `bun:"verified,notnull" json:"verified"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Permission is a named capability users can be granted.
type Permission struct {
	bun.BaseModel `bun:"table:permissions,alias:perm"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string    `bun:"name,notnull,unique" json:"name,omitempty"`
}

// UserPermission joins users to permissions. Its existence is the sole
// source of truth for membership; the pair is unique.
type UserPermission struct {
	bun.BaseModel `bun:"table:user_permissions,alias:uperm"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid,unique:user_permissions_pair" json:"user_id,omitempty"`
	PermissionID  uuid.UUID `bun:"permission_id,notnull,type:uuid,unique:user_permissions_pair" json:"permission_id,omitempty"`
}

// VerificationCode is the single-use token mailed to a new registration.
// It is deleted atomically with flipping the user to verified.
type VerificationCode struct {
	bun.BaseModel `bun:"table:verification_codes,alias:vc"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Code          string    `bun:"code,notnull,unique" json:"code,omitempty"`
	UserID        uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
}
