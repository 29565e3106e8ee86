package services

import (
	"errors"

	"agroconnect/internal/models"
)

// Error taxonomy for workflow operations. Services wrap these with
// fmt.Errorf("%w: ...") so callers can classify failures with errors.Is
// while still surfacing a user-readable message.
var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrPermission marks a role or ownership mismatch for the attempted action.
	ErrPermission = errors.New("permission denied")

	// ErrConflict marks an entity not in the state required for the transition.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a missing referenced entity.
	ErrNotFound = errors.New("not found")
)

// Identity is the authenticated caller passed into every workflow operation.
// There is no ambient session state; handlers build this from the JWT claims.
type Identity struct {
	UserID uint
	Role   models.Role
}
