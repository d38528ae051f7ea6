package models

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/Harshinireddy05/DayntTech/internal/common"
)

// ErrInvalidEmail is the validation error for a malformed address.
var ErrInvalidEmail = fmt.Errorf("%w: invalid email address", common.ErrorValidation)

// Credential is a registered login. Only the password hash is stored.
type Credential struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// NormalizeEmail trims and lower-cases an address so lookups are exact.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail accepts a bare addr-spec ("a@x.com") only. Display names,
// angle brackets and path separators are rejected.
func ValidateEmail(email string) error {
	if strings.ContainsAny(email, `/\`) {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
