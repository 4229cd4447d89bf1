package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// LotRepository provides data access methods for the lot table.
type LotRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewLotRepository creates a new LotRepository with the provided database connection.
func NewLotRepository(db *sql.DB) *LotRepository {
	return &LotRepository{db: db}
}

// WithTx returns a new LotRepository scoped to the provided transaction.
func (r *LotRepository) WithTx(tx *sql.Tx) *LotRepository {
	return &LotRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *LotRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const lotColumns = `id, owner_id, name, source, purchase_date, total_cost, status, closed_at, closure_notes, created_at`

// GetLot retrieves a lot owned by ownerID.
// Returns apperrors.ErrLotNotFound if the lot does not exist or belongs to another owner.
func (r *LotRepository) GetLot(ctx context.Context, ownerID, lotID string) (model.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lot WHERE id = ? AND owner_id = ?`

	lot, err := scanLot(r.getQuerier().QueryRowContext(ctx, query, lotID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Lot{}, apperrors.ErrLotNotFound
	}
	if err != nil {
		return model.Lot{}, fmt.Errorf("failed to get lot: %w", err)
	}
	return lot, nil
}

// ListLots retrieves every lot of an owner ordered by purchase date.
// Returns an empty slice if the owner has no lots.
func (r *LotRepository) ListLots(ctx context.Context, ownerID string) ([]model.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lot WHERE owner_id = ? ORDER BY purchase_date ASC, created_at ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lot table: %w", err)
	}
	defer rows.Close()

	lots := []model.Lot{}
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lot table results: %w", err)
		}
		lots = append(lots, lot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lot table: %w", err)
	}

	return lots, nil
}

// ListClosedLotIDs returns the IDs of closed lots across all owners, or for one owner when ownerID is set.
func (r *LotRepository) ListClosedLotIDs(ctx context.Context, ownerID string) (map[string]string, error) {
	query := `SELECT id, owner_id FROM lot WHERE status = 'closed'`
	var args []any
	if ownerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query closed lots: %w", err)
	}
	defer rows.Close()

	lots := make(map[string]string)
	for rows.Next() {
		var id, owner string
		if err := rows.Scan(&id, &owner); err != nil {
			return nil, fmt.Errorf("failed to scan closed lots: %w", err)
		}
		lots[id] = owner
	}
	return lots, rows.Err()
}

// InsertLot inserts a new lot.
func (r *LotRepository) InsertLot(ctx context.Context, lot *model.Lot) error {
	query := `
		INSERT INTO lot (id, owner_id, name, source, purchase_date, total_cost, status, closed_at, closure_notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		lot.ID,
		lot.OwnerID,
		lot.Name,
		nullString(lot.Source),
		formatDate(lot.PurchaseDate),
		lot.TotalCost.String(),
		string(lot.Status),
		formatNullTimestamp(lot.ClosedAt),
		nullString(lot.ClosureNotes),
		formatTimestamp(lot.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert lot: %w", err)
	}

	return nil
}

// UpdateLotStatus writes the status and closure metadata of a lot.
func (r *LotRepository) UpdateLotStatus(ctx context.Context, lot *model.Lot) error {
	query := `
		UPDATE lot
		SET status = ?, closed_at = ?, closure_notes = ?
		WHERE id = ? AND owner_id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		string(lot.Status),
		formatNullTimestamp(lot.ClosedAt),
		nullString(lot.ClosureNotes),
		lot.ID,
		lot.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lot status: %w", err)
	}

	return expectOneRow(result, apperrors.ErrLotNotFound)
}

func scanLot(row scanner) (model.Lot, error) {
	var lot model.Lot
	var source, closedAt, closureNotes sql.NullString
	var purchaseDateStr, createdAtStr, status string

	err := row.Scan(
		&lot.ID,
		&lot.OwnerID,
		&lot.Name,
		&source,
		&purchaseDateStr,
		&lot.TotalCost,
		&status,
		&closedAt,
		&closureNotes,
		&createdAtStr,
	)
	if err != nil {
		return model.Lot{}, err
	}

	lot.Source = source.String
	lot.ClosureNotes = closureNotes.String
	lot.Status = model.LotStatus(status)

	if lot.PurchaseDate, err = ParseTime(purchaseDateStr); err != nil {
		return model.Lot{}, err
	}
	if lot.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Lot{}, err
	}
	if lot.ClosedAt, err = parseNullTime(closedAt); err != nil {
		return model.Lot{}, err
	}

	return lot, nil
}
