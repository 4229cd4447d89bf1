package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// ExpenseRepository provides data access methods for the expense table.
type ExpenseRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewExpenseRepository creates a new ExpenseRepository with the provided database connection.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// WithTx returns a new ExpenseRepository scoped to the provided transaction.
func (r *ExpenseRepository) WithTx(tx *sql.Tx) *ExpenseRepository {
	return &ExpenseRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *ExpenseRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const expenseColumns = `id, owner_id, show_id, lot_id, category, description, amount, date, deleted, deleted_at, deletion_reason, created_at`

// GetExpense retrieves an expense owned by ownerID, including soft-deleted ones.
func (r *ExpenseRepository) GetExpense(ctx context.Context, ownerID, expenseID string) (model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense WHERE id = ? AND owner_id = ?`

	e, err := scanExpense(r.getQuerier().QueryRowContext(ctx, query, expenseID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Expense{}, apperrors.ErrExpenseNotFound
	}
	if err != nil {
		return model.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// ListExpenses retrieves the live expenses of an owner, optionally for one show.
func (r *ExpenseRepository) ListExpenses(ctx context.Context, ownerID, showID string) ([]model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expense WHERE owner_id = ? AND deleted = FALSE`
	args := []any{ownerID}
	if showID != "" {
		query += ` AND show_id = ?`
		args = append(args, showID)
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense table: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense table results: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense table: %w", err)
	}

	return expenses, nil
}

// InsertExpense inserts a new expense.
func (r *ExpenseRepository) InsertExpense(ctx context.Context, e *model.Expense) error {
	query := `
		INSERT INTO expense (id, owner_id, show_id, lot_id, category, description, amount, date, deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, FALSE, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		e.ID,
		e.OwnerID,
		nullString(e.ShowID),
		nullString(e.LotID),
		e.Category,
		nullString(e.Description),
		e.Amount.String(),
		formatDate(e.Date),
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// SoftDelete flags an expense as deleted with a reason and timestamp.
func (r *ExpenseRepository) SoftDelete(ctx context.Context, ownerID, expenseID, reason string, at time.Time) error {
	result, err := r.getQuerier().ExecContext(ctx,
		`UPDATE expense SET deleted = TRUE, deleted_at = ?, deletion_reason = ? WHERE id = ? AND owner_id = ?`,
		formatTimestamp(at), reason, expenseID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to soft delete expense: %w", err)
	}

	return expectOneRow(result, apperrors.ErrExpenseNotFound)
}

func scanExpense(row scanner) (model.Expense, error) {
	var e model.Expense
	var showID, lotID, description, deletedAt, deletionReason sql.NullString
	var dateStr, createdAtStr string

	err := row.Scan(
		&e.ID,
		&e.OwnerID,
		&showID,
		&lotID,
		&e.Category,
		&description,
		&e.Amount,
		&dateStr,
		&e.Deleted,
		&deletedAt,
		&deletionReason,
		&createdAtStr,
	)
	if err != nil {
		return model.Expense{}, err
	}

	e.ShowID = showID.String
	e.LotID = lotID.String
	e.Description = description.String
	e.DeletionReason = deletionReason.String

	if e.Date, err = ParseTime(dateStr); err != nil {
		return model.Expense{}, err
	}
	if e.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Expense{}, err
	}
	if e.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return model.Expense{}, err
	}

	return e, nil
}
