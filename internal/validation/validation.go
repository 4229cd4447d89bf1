package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
)

// ErrInvalidUUID is returned for identifiers that do not parse as UUIDs.
var ErrInvalidUUID = fmt.Errorf("%w: invalid UUID format", apperrors.ErrValidation)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}
