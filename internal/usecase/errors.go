package usecase

import (
	"errors"
	"fmt"

	"adviser-portal/pkg/utils"
)

// Domain errors returned by the service layer. Handlers translate these with
// errors.Is, so wrapped variants carrying extra context still map correctly.
var (
	// ErrValidation marks a malformed or incomplete request payload.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks an attempt to register a user_id or email that
	// already has a credential.
	ErrConflict = errors.New("identity already registered")

	// ErrNotFound marks a lookup that matched nothing the caller may see.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidParent marks a staff registration whose adviser_user_id does
	// not resolve to an adviser_admin credential.
	ErrInvalidParent = errors.New("parent adviser is invalid")

	// ErrInvalidRequest marks a structurally valid payload that breaks a
	// domain rule, such as a staff user registering under itself.
	ErrInvalidRequest = errors.New("request violates a domain rule")

	// ErrInvalidCredentials covers unknown user, wrong password and
	// non-signable credential status alike, so responses do not reveal which
	// check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCodeInvalidOrExpired marks a verification code that does not match
	// or whose validity window has passed.
	ErrCodeInvalidOrExpired = errors.New("verification code is invalid or expired")

	// ErrInvalidTransition marks a status move the state machine forbids.
	ErrInvalidTransition = errors.New("status transition not allowed")
)

func validationError(errs map[string]string) error {
	return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
}
