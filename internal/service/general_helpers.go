package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
	"github.com/ndewijer/Show-Ledger-Backend/internal/validation"
)

// MoneyPlaces is the number of decimal places monetary values are rounded to in rollups.
const MoneyPlaces = 2

// runInTx executes fn as a single all-or-nothing unit of work.
//
// Every ledger operation that writes more than one row goes through here: the
// primary fact, its audit metadata, compensating cash entries and derived
// status updates commit together or not at all.
//
// Parameters:
//   - ctx: Context for cancellation; a cancelled context rolls the transaction back
//   - db: The database connection to begin the transaction on
//   - operation: Short operation name used in error messages
//   - fn: The writes to apply; any returned error rolls back every write
//
// Returns fn's error unchanged after a clean rollback. If the rollback itself
// fails the error is an *apperrors.PartialFailureError.
func runInTx(ctx context.Context, db *sql.DB, operation string, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", operation, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return &apperrors.PartialFailureError{Operation: operation, Err: err, RollbackErr: rbErr}
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit: %w", operation, err)
	}

	return nil
}

// newCashEntry builds an append-only ledger line. Sales and purchases are dated
// on their business date; adjustments and reversals on the day they are written.
func newCashEntry(
	ownerID string,
	amount decimal.Decimal,
	typ model.CashTransactionType,
	date time.Time,
	description string,
) *model.CashTransaction {
	return &model.CashTransaction{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Amount:      amount,
		Type:        typ,
		Description: description,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
}

// sumRevenue folds the revenue of live transactions.
func sumRevenue(transactions []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if !t.Deleted {
			total = total.Add(t.Revenue)
		}
	}
	return total.Round(MoneyPlaces)
}

// parseValidatedDate parses a date that already passed request validation.
func parseValidatedDate(value string) time.Time {
	d, err := validation.ParseDate(value)
	if err != nil {
		return time.Time{}
	}
	return d
}
