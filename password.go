package identity

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// PasswordDefect names a single policy rule a candidate password violates.
type PasswordDefect string

const (
	DefectTooShort    PasswordDefect = "too_short"
	DefectNoNumber    PasswordDefect = "no_number"
	DefectNoSymbol    PasswordDefect = "no_symbol"
	DefectNoUppercase PasswordDefect = "no_uppercase"
	DefectNoLowercase PasswordDefect = "no_lowercase"
)

// MinPasswordLength is the policy's length floor.
const MinPasswordLength = 8

// PasswordPolicy validates candidate passwords against composable rules.
// Every rule is evaluated; all violations are reported together.
type PasswordPolicy struct {
	numbers *regexp.Regexp
	symbols *regexp.Regexp
	upper   *regexp.Regexp
	lower   *regexp.Regexp
}

// NewPasswordPolicy compiles the default rule set.
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		numbers: regexp.MustCompile(`[0-9]`),
		symbols: regexp.MustCompile(`[!@#$%^&*();\\/|<>"'_+\-.,?=]`),
		upper:   regexp.MustCompile(`[A-Z]`),
		lower:   regexp.MustCompile(`[a-z]`),
	}
}

// Defects returns every rule the password violates, empty when it passes.
func (p *PasswordPolicy) Defects(password string) []PasswordDefect {
	var defects []PasswordDefect

	if len(password) < MinPasswordLength {
		defects = append(defects, DefectTooShort)
	}
	if !p.numbers.MatchString(password) {
		defects = append(defects, DefectNoNumber)
	}
	if !p.symbols.MatchString(password) {
		defects = append(defects, DefectNoSymbol)
	}
	if !p.upper.MatchString(password) {
		defects = append(defects, DefectNoUppercase)
	}
	if !p.lower.MatchString(password) {
		defects = append(defects, DefectNoLowercase)
	}

	return defects
}

// Validate returns ErrWeakPassword carrying the full defect list in its
// metadata, or nil when the password satisfies the policy.
func (p *PasswordPolicy) Validate(password string) error {
	defects := p.Defects(password)
	if len(defects) == 0 {
		return nil
	}

	return errors.New(ErrWeakPassword.Message, ErrWeakPassword.Category).
		WithTextCode(TextCodeWeakPassword).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{
			"defects": defects,
		})
}

// ValidateUsername rejects only the blank username.
func ValidateUsername(username string) error {
	if err := validation.Validate(username, validation.Required); err != nil {
		return ErrBlankUsername
	}
	return nil
}

// ValidatePermissionName rejects only the blank permission name.
func ValidatePermissionName(name string) error {
	if err := validation.Validate(name, validation.Required); err != nil {
		return ErrBadPermissionName
	}
	return nil
}

// WeakPasswordDefects extracts the defect list from a Validate error,
// nil when err is not a weak password error.
func WeakPasswordDefects(err error) []PasswordDefect {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return nil
	}
	if rich.TextCode != TextCodeWeakPassword || rich.Metadata == nil {
		return nil
	}
	if defects, ok := rich.Metadata["defects"].([]PasswordDefect); ok {
		return defects
	}
	return nil
}
