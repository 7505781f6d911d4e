package identity

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredential   = "identity_invalid_credential"
	TextCodeWeakPassword        = "identity_weak_password"
	TextCodeBlankUsername       = "identity_blank_username"
	TextCodeBadPermissionName   = "identity_bad_permission_name"
	TextCodeTokenExpired        = "identity_token_expired"
	TextCodeTokenInvalid        = "identity_token_invalid"
	TextCodePasswordMismatch    = "identity_password_mismatch"
	TextCodePermissionDenied    = "identity_permission_denied"
	TextCodeNotVerified         = "identity_not_verified"
	TextCodeIdentityNotFound    = "identity_not_found"
	TextCodePermissionNotFound  = "identity_permission_not_found"
	TextCodeCodeNotFound        = "identity_verification_code_not_found"
	TextCodeDuplicateUsername   = "identity_duplicate_username"
	TextCodeDuplicatePermission = "identity_duplicate_permission"
	TextCodeDuplicateGrant      = "identity_duplicate_grant"
	TextCodeEmptyPassword       = "identity_empty_password"
)

// ErrInvalidCredential is returned when a credential shape is not accepted by
// the entry point, e.g. a bearer-only credential passed to session
// authentication through the widened Credential interface.
var ErrInvalidCredential = errors.New("invalid credential shape", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidCredential).
	WithCode(errors.CodeBadRequest)

// ErrWeakPassword is returned when a password violates the policy. The
// individual defects travel in the error metadata under "defects".
var ErrWeakPassword = errors.New("password does not satisfy policy", errors.CategoryValidation).
	WithTextCode(TextCodeWeakPassword).
	WithCode(errors.CodeBadRequest)

// ErrBlankUsername is returned for empty usernames.
var ErrBlankUsername = errors.New("username must not be blank", errors.CategoryValidation).
	WithTextCode(TextCodeBlankUsername).
	WithCode(errors.CodeBadRequest)

// ErrBadPermissionName is returned for empty permission names.
var ErrBadPermissionName = errors.New("invalid permission name", errors.CategoryValidation).
	WithTextCode(TextCodeBadPermissionName).
	WithCode(errors.CodeBadRequest)

// ErrNoEmptyString rejects hashing the empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired is the only token failure that justifies a client-side
// renewal attempt.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalid covers bad signatures, malformed claims, and predicate
// mismatches (wrong issuer or subject).
var ErrTokenInvalid = errors.New("token is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrPasswordMismatch is returned when a candidate password does not match
// the stored hash. Internal hasher failures map here as well; verification
// fails closed.
var ErrPasswordMismatch = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode(TextCodePasswordMismatch).
	WithCode(errors.CodeUnauthorized)

// ErrPermissionDenied is returned when an identity lacks a required
// permission. Distinct from ErrPermissionNotFound: the permission exists,
// the membership does not.
var ErrPermissionDenied = errors.New("permission denied", errors.CategoryAuthz).
	WithTextCode(TextCodePermissionDenied).
	WithCode(errors.CodeForbidden)

// ErrNotVerified blocks webtoken issuance and bearer authentication for
// accounts that never redeemed their verification code.
var ErrNotVerified = errors.New("user is not verified", errors.CategoryAuthz).
	WithTextCode(TextCodeNotVerified).
	WithCode(errors.CodeForbidden)

// ErrIdentityNotFound is the error we return for non found users.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeIdentityNotFound).
	WithCode(errors.CodeNotFound)

// ErrPermissionNotFound is returned when a named permission does not exist.
var ErrPermissionNotFound = errors.New("permission not found", errors.CategoryNotFound).
	WithTextCode(TextCodePermissionNotFound).
	WithCode(errors.CodeNotFound)

// ErrVerificationCodeNotFound is returned for missing or already consumed
// verification codes.
var ErrVerificationCodeNotFound = errors.New("verification code not found", errors.CategoryNotFound).
	WithTextCode(TextCodeCodeNotFound).
	WithCode(errors.CodeNotFound)

// ErrDuplicateUsername surfaces the store's unique constraint on usernames.
var ErrDuplicateUsername = errors.New("username already taken", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateUsername).
	WithCode(errors.CodeConflict)

// ErrDuplicatePermission surfaces the unique constraint on permission names.
var ErrDuplicatePermission = errors.New("permission already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicatePermission).
	WithCode(errors.CodeConflict)

// ErrDuplicateGrant surfaces the unique constraint on (user, permission)
// grant pairs.
var ErrDuplicateGrant = errors.New("permission already granted", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateGrant).
	WithCode(errors.CodeConflict)

// IsUniqueViolation reports whether err is a store unique-constraint
// violation. Driver error types differ between sqlite and postgres, so we
// match on the stable message fragments.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}
