package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// ShowRepository provides data access methods for the show table.
type ShowRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewShowRepository creates a new ShowRepository with the provided database connection.
func NewShowRepository(db *sql.DB) *ShowRepository {
	return &ShowRepository{db: db}
}

// WithTx returns a new ShowRepository scoped to the provided transaction.
func (r *ShowRepository) WithTx(tx *sql.Tx) *ShowRepository {
	return &ShowRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *ShowRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const showColumns = `id, owner_id, name, date, table_cost, status, created_at`

// GetShow retrieves a show owned by ownerID.
// Returns apperrors.ErrShowNotFound if the show does not exist or belongs to another owner.
func (r *ShowRepository) GetShow(ctx context.Context, ownerID, showID string) (model.Show, error) {
	query := `SELECT ` + showColumns + ` FROM show WHERE id = ? AND owner_id = ?`

	show, err := scanShow(r.getQuerier().QueryRowContext(ctx, query, showID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Show{}, apperrors.ErrShowNotFound
	}
	if err != nil {
		return model.Show{}, fmt.Errorf("failed to get show: %w", err)
	}
	return show, nil
}

// ListShows retrieves every show of an owner ordered by date.
func (r *ShowRepository) ListShows(ctx context.Context, ownerID string) ([]model.Show, error) {
	query := `SELECT ` + showColumns + ` FROM show WHERE owner_id = ? ORDER BY date ASC, created_at ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query show table: %w", err)
	}
	defer rows.Close()

	shows := []model.Show{}
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan show table results: %w", err)
		}
		shows = append(shows, show)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating show table: %w", err)
	}

	return shows, nil
}

// InsertShow inserts a new show.
func (r *ShowRepository) InsertShow(ctx context.Context, show *model.Show) error {
	query := `
		INSERT INTO show (id, owner_id, name, date, table_cost, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		show.ID,
		show.OwnerID,
		show.Name,
		formatDate(show.Date),
		show.TableCost.String(),
		string(show.Status),
		formatTimestamp(show.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert show: %w", err)
	}

	return nil
}

// UpdateShowStatus writes the status of a show.
func (r *ShowRepository) UpdateShowStatus(ctx context.Context, ownerID, showID string, status model.ShowStatus) error {
	result, err := r.getQuerier().ExecContext(ctx,
		`UPDATE show SET status = ? WHERE id = ? AND owner_id = ?`,
		string(status), showID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update show status: %w", err)
	}

	return expectOneRow(result, apperrors.ErrShowNotFound)
}

// CountFinancialActivity returns how many transactions and expenses reference
// the show. Soft-deleted rows still reference it and are counted.
func (r *ShowRepository) CountFinancialActivity(ctx context.Context, showID string) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM "transaction" WHERE show_id = ?) +
			(SELECT COUNT(*) FROM expense WHERE show_id = ?)
	`

	var count int
	if err := r.getQuerier().QueryRowContext(ctx, query, showID, showID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count show activity: %w", err)
	}
	return count, nil
}

func scanShow(row scanner) (model.Show, error) {
	var show model.Show
	var dateStr, createdAtStr, status string

	err := row.Scan(
		&show.ID,
		&show.OwnerID,
		&show.Name,
		&dateStr,
		&show.TableCost,
		&status,
		&createdAtStr,
	)
	if err != nil {
		return model.Show{}, err
	}

	show.Status = model.ShowStatus(status)
	if show.Date, err = ParseTime(dateStr); err != nil {
		return model.Show{}, err
	}
	if show.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Show{}, err
	}

	return show, nil
}
