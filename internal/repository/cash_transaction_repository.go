package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// CashTransactionRepository provides append-only access to the cash_transaction table.
// There is deliberately no update or delete method: reversals are new rows.
type CashTransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewCashTransactionRepository creates a new CashTransactionRepository with the provided database connection.
func NewCashTransactionRepository(db *sql.DB) *CashTransactionRepository {
	return &CashTransactionRepository{db: db}
}

// WithTx returns a new CashTransactionRepository scoped to the provided transaction.
func (r *CashTransactionRepository) WithTx(tx *sql.Tx) *CashTransactionRepository {
	return &CashTransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *CashTransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertCashTransaction appends a ledger line.
func (r *CashTransactionRepository) InsertCashTransaction(ctx context.Context, c *model.CashTransaction) error {
	query := `
		INSERT INTO cash_transaction (id, owner_id, amount, type, description, date, transaction_id, lot_id, expense_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		c.ID,
		c.OwnerID,
		c.Amount.String(),
		string(c.Type),
		nullString(c.Description),
		formatDate(c.Date),
		nullString(c.TransactionID),
		nullString(c.LotID),
		nullString(c.ExpenseID),
		formatTimestamp(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash transaction: %w", err)
	}

	return nil
}

// ListCashTransactions returns every ledger line of an owner in insertion order.
// An empty ownerID lists every owner.
func (r *CashTransactionRepository) ListCashTransactions(ctx context.Context, ownerID string) ([]model.CashTransaction, error) {
	query := `
		SELECT id, owner_id, amount, type, description, date, transaction_id, lot_id, expense_id, created_at
		FROM cash_transaction
	`
	var args []any
	if ownerID != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY created_at ASC, rowid ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash_transaction table: %w", err)
	}
	defer rows.Close()

	entries := []model.CashTransaction{}
	for rows.Next() {
		var c model.CashTransaction
		var typ, dateStr, createdAtStr string
		var description, transactionID, lotID, expenseID sql.NullString

		err := rows.Scan(
			&c.ID,
			&c.OwnerID,
			&c.Amount,
			&typ,
			&description,
			&dateStr,
			&transactionID,
			&lotID,
			&expenseID,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash_transaction table results: %w", err)
		}

		c.Type = model.CashTransactionType(typ)
		c.Description = description.String
		c.TransactionID = transactionID.String
		c.LotID = lotID.String
		c.ExpenseID = expenseID.String

		if c.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		entries = append(entries, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash_transaction table: %w", err)
	}

	return entries, nil
}
