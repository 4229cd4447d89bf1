package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction and
// transaction_correction tables. Transactions are soft-deleted only.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionColumns = `
	id, owner_id, type, revenue, quantity, date, notes, show_card_id, lot_id, show_id,
	deleted, deleted_at, deletion_reason, correction_note, corrected_at, correction_count, created_at
`

// GetTransaction retrieves a transaction owned by ownerID, including soft-deleted ones.
// Returns apperrors.ErrTransactionNotFound if it does not exist or belongs to another owner.
func (r *TransactionRepository) GetTransaction(ctx context.Context, ownerID, transactionID string) (model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" WHERE id = ? AND owner_id = ?`

	t, err := scanTransaction(r.getQuerier().QueryRowContext(ctx, query, transactionID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// ListTransactions retrieves transactions ordered by date.
//
// Parameters:
//   - ownerID: owner to scope to; empty lists every owner (consistency audit only)
//   - filter: optional lot, show and show card filters; deleted rows are
//     excluded unless IncludeDeleted is set
//
// Returns an empty slice if nothing matches.
func (r *TransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" WHERE 1=1`
	var args []any

	if ownerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}
	if filter.LotID != "" {
		query += ` AND lot_id = ?`
		args = append(args, filter.LotID)
	}
	if filter.ShowID != "" {
		query += ` AND show_id = ?`
		args = append(args, filter.ShowID)
	}
	if filter.ShowCardID != "" {
		query += ` AND show_card_id = ?`
		args = append(args, filter.ShowCardID)
	}
	if !filter.IncludeDeleted {
		query += ` AND deleted = FALSE`
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// InsertTransaction inserts a new transaction.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (
			id, owner_id, type, revenue, quantity, date, notes, show_card_id, lot_id, show_id,
			deleted, correction_count, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, FALSE, 0, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.OwnerID,
		string(t.Type),
		t.Revenue.String(),
		nullInt(t.Quantity),
		formatDate(t.Date),
		nullString(t.Notes),
		nullString(t.ShowCardID),
		nullString(t.LotID),
		nullString(t.ShowID),
		formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// UpdateCorrected writes every correctable field together with the correction
// metadata as a single row update.
func (r *TransactionRepository) UpdateCorrected(ctx context.Context, t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET revenue = ?, quantity = ?, date = ?, notes = ?, lot_id = ?, show_id = ?,
			correction_note = ?, corrected_at = ?, correction_count = ?
		WHERE id = ? AND owner_id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		t.Revenue.String(),
		nullInt(t.Quantity),
		formatDate(t.Date),
		nullString(t.Notes),
		nullString(t.LotID),
		nullString(t.ShowID),
		nullString(t.CorrectionNote),
		formatNullTimestamp(t.CorrectedAt),
		t.CorrectionCount,
		t.ID,
		t.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return expectOneRow(result, apperrors.ErrTransactionNotFound)
}

// SoftDelete flags a transaction as deleted with a reason and timestamp.
func (r *TransactionRepository) SoftDelete(ctx context.Context, ownerID, transactionID, reason string, at time.Time) error {
	query := `
		UPDATE "transaction"
		SET deleted = TRUE, deleted_at = ?, deletion_reason = ?
		WHERE id = ? AND owner_id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, formatTimestamp(at), reason, transactionID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to soft delete transaction: %w", err)
	}

	return expectOneRow(result, apperrors.ErrTransactionNotFound)
}

// InsertCorrection appends one entry to a transaction's correction history.
func (r *TransactionRepository) InsertCorrection(ctx context.Context, c *model.TransactionCorrection) error {
	changes, err := json.Marshal(c.Changes)
	if err != nil {
		return fmt.Errorf("failed to encode correction changes: %w", err)
	}

	query := `
		INSERT INTO transaction_correction (id, transaction_id, owner_id, sequence, note, changes, corrected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.getQuerier().ExecContext(ctx, query,
		c.ID,
		c.TransactionID,
		c.OwnerID,
		c.Sequence,
		c.Note,
		string(changes),
		formatTimestamp(c.CorrectedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction correction: %w", err)
	}

	return nil
}

// ListCorrections returns the correction history of a transaction, oldest first.
func (r *TransactionRepository) ListCorrections(ctx context.Context, ownerID, transactionID string) ([]model.TransactionCorrection, error) {
	query := `
		SELECT id, transaction_id, owner_id, sequence, note, changes, corrected_at
		FROM transaction_correction
		WHERE transaction_id = ? AND owner_id = ?
		ORDER BY sequence ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, transactionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction_correction table: %w", err)
	}
	defer rows.Close()

	corrections := []model.TransactionCorrection{}
	for rows.Next() {
		var c model.TransactionCorrection
		var changes, correctedAtStr string

		if err := rows.Scan(&c.ID, &c.TransactionID, &c.OwnerID, &c.Sequence, &c.Note, &changes, &correctedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan transaction_correction results: %w", err)
		}
		if err := json.Unmarshal([]byte(changes), &c.Changes); err != nil {
			return nil, fmt.Errorf("failed to decode correction changes: %w", err)
		}
		if c.CorrectedAt, err = ParseTime(correctedAtStr); err != nil {
			return nil, err
		}
		corrections = append(corrections, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction_correction table: %w", err)
	}

	return corrections, nil
}

func scanTransaction(row scanner) (model.Transaction, error) {
	var t model.Transaction
	var typ, dateStr, createdAtStr string
	var quantity sql.NullInt64
	var notes, showCardID, lotID, showID sql.NullString
	var deletedAt, deletionReason, correctionNote, correctedAt sql.NullString

	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&typ,
		&t.Revenue,
		&quantity,
		&dateStr,
		&notes,
		&showCardID,
		&lotID,
		&showID,
		&t.Deleted,
		&deletedAt,
		&deletionReason,
		&correctionNote,
		&correctedAt,
		&t.CorrectionCount,
		&createdAtStr,
	)
	if err != nil {
		return model.Transaction{}, err
	}

	t.Type = model.TransactionType(typ)
	if quantity.Valid {
		q := int(quantity.Int64)
		t.Quantity = &q
	}
	t.Notes = notes.String
	t.ShowCardID = showCardID.String
	t.LotID = lotID.String
	t.ShowID = showID.String
	t.DeletionReason = deletionReason.String
	t.CorrectionNote = correctionNote.String

	if t.Date, err = ParseTime(dateStr); err != nil {
		return model.Transaction{}, err
	}
	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Transaction{}, err
	}
	if t.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return model.Transaction{}, err
	}
	if t.CorrectedAt, err = parseNullTime(correctedAt); err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}
