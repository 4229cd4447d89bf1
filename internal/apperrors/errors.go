package apperrors

import (
	"errors"
	"fmt"
)

// Error categories. Every ledger error wraps exactly one of these so callers
// can branch with errors.Is without knowing the concrete entity.
var (
	// ErrValidation indicates malformed input that was rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates that a referenced entity does not exist or does not
	// belong to the caller.
	ErrNotFound = errors.New("not found")

	// ErrConsistencyViolation indicates that an operation would break a ledger
	// invariant. It is always raised before any write.
	ErrConsistencyViolation = errors.New("consistency violation")

	// ErrPartialFailure indicates that a multi-step operation may have left
	// some of its writes applied. Requires manual reconciliation.
	ErrPartialFailure = errors.New("partial failure")
)

// Domain entity errors represent missing entities in the system.
var (
	// ErrLotNotFound indicates that a lot with the given ID does not exist for the owner.
	ErrLotNotFound = fmt.Errorf("lot %w", ErrNotFound)

	// ErrShowNotFound indicates that a show with the given ID does not exist for the owner.
	ErrShowNotFound = fmt.Errorf("show %w", ErrNotFound)

	// ErrShowCardNotFound indicates that a show card with the given ID does not exist for the owner.
	ErrShowCardNotFound = fmt.Errorf("show card %w", ErrNotFound)

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist for the owner.
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)

	// ErrExpenseNotFound indicates that an expense with the given ID does not exist for the owner.
	ErrExpenseNotFound = fmt.Errorf("expense %w", ErrNotFound)
)

// Business rule violations.
var (
	// ErrLotHasAvailableCards is returned when closing a lot that still holds available cards.
	ErrLotHasAvailableCards = fmt.Errorf("%w: lot still has available show cards", ErrConsistencyViolation)

	// ErrLotNotActive is returned when adding cards to a lot that is closed or archived.
	ErrLotNotActive = fmt.Errorf("%w: lot is not active", ErrConsistencyViolation)

	// ErrInvalidLotTransition is returned for a lot status change the lifecycle does not allow.
	ErrInvalidLotTransition = fmt.Errorf("%w: invalid lot status transition", ErrConsistencyViolation)

	// ErrShowCardNotAvailable is returned when selling or disposing of a card that is not available.
	ErrShowCardNotAvailable = fmt.Errorf("%w: show card is not available", ErrConsistencyViolation)

	// ErrShowStatusRegression is returned when a show with financial activity would move backwards.
	ErrShowStatusRegression = fmt.Errorf("%w: show has financial activity and cannot move backwards", ErrConsistencyViolation)

	// ErrTransactionDeleted is returned when mutating a soft-deleted transaction.
	ErrTransactionDeleted = fmt.Errorf("%w: transaction is deleted", ErrConsistencyViolation)

	// ErrExpenseDeleted is returned when deleting an expense twice.
	ErrExpenseDeleted = fmt.Errorf("%w: expense is deleted", ErrConsistencyViolation)

	// ErrStaleAssignment is returned when the caller's "from" reference no longer
	// matches the stored transaction.
	ErrStaleAssignment = fmt.Errorf("%w: transaction is no longer assigned to the given source", ErrConsistencyViolation)

	// ErrWrongTransactionType is returned when an operation is applied to a
	// transaction type it does not support.
	ErrWrongTransactionType = fmt.Errorf("%w: operation not supported for this transaction type", ErrConsistencyViolation)
)

// PartialFailureError reports a unit of work whose rollback failed after one
// of its steps errored. The store may hold some of the writes.
type PartialFailureError struct {
	Operation   string
	Err         error
	RollbackErr error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: %v (rollback failed: %v); manual reconciliation required",
		e.Operation, e.Err, e.RollbackErr)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the partial failure category.
func (e *PartialFailureError) Is(target error) bool {
	return target == ErrPartialFailure
}
