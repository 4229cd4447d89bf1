package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

// ShowCardRepository provides data access methods for the show_card table.
// Card status is only written by the status propagation paths of the service layer.
type ShowCardRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewShowCardRepository creates a new ShowCardRepository with the provided database connection.
func NewShowCardRepository(db *sql.DB) *ShowCardRepository {
	return &ShowCardRepository{db: db}
}

// WithTx returns a new ShowCardRepository scoped to the provided transaction.
func (r *ShowCardRepository) WithTx(tx *sql.Tx) *ShowCardRepository {
	return &ShowCardRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *ShowCardRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const showCardColumns = `id, owner_id, lot_id, name, asking_price, status, destination_lot_id, created_at`

// GetShowCard retrieves a show card owned by ownerID.
// Returns apperrors.ErrShowCardNotFound if the card does not exist or belongs to another owner.
func (r *ShowCardRepository) GetShowCard(ctx context.Context, ownerID, cardID string) (model.ShowCard, error) {
	query := `SELECT ` + showCardColumns + ` FROM show_card WHERE id = ? AND owner_id = ?`

	card, err := scanShowCard(r.getQuerier().QueryRowContext(ctx, query, cardID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ShowCard{}, apperrors.ErrShowCardNotFound
	}
	if err != nil {
		return model.ShowCard{}, fmt.Errorf("failed to get show card: %w", err)
	}
	return card, nil
}

// ListShowCards retrieves the show cards of an owner, optionally filtered by lot and status.
// An empty ownerID lists cards of every owner; used by the consistency audit.
func (r *ShowCardRepository) ListShowCards(ctx context.Context, ownerID string, filter model.ShowCardFilter) ([]model.ShowCard, error) {
	query := `SELECT ` + showCardColumns + ` FROM show_card WHERE 1=1`
	var args []any

	if ownerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}
	if filter.LotID != "" {
		query += ` AND lot_id = ?`
		args = append(args, filter.LotID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query show_card table: %w", err)
	}
	defer rows.Close()

	cards := []model.ShowCard{}
	for rows.Next() {
		card, err := scanShowCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan show_card table results: %w", err)
		}
		cards = append(cards, card)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating show_card table: %w", err)
	}

	return cards, nil
}

// InsertShowCard inserts a new show card.
func (r *ShowCardRepository) InsertShowCard(ctx context.Context, card *model.ShowCard) error {
	query := `
		INSERT INTO show_card (id, owner_id, lot_id, name, asking_price, status, destination_lot_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var askingPrice any
	if card.AskingPrice != nil {
		askingPrice = card.AskingPrice.String()
	}

	_, err := r.getQuerier().ExecContext(ctx, query,
		card.ID,
		card.OwnerID,
		card.LotID,
		card.Name,
		askingPrice,
		string(card.Status),
		nullString(card.DestinationLotID),
		formatTimestamp(card.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert show card: %w", err)
	}

	return nil
}

// UpdateStatus sets a card's status and destination lot.
// An empty destinationLotID clears the destination.
func (r *ShowCardRepository) UpdateStatus(ctx context.Context, cardID string, status model.CardStatus, destinationLotID string) error {
	result, err := r.getQuerier().ExecContext(ctx,
		`UPDATE show_card SET status = ?, destination_lot_id = ? WHERE id = ?`,
		string(status), nullString(destinationLotID), cardID,
	)
	if err != nil {
		return fmt.Errorf("failed to update show card status: %w", err)
	}

	return expectOneRow(result, apperrors.ErrShowCardNotFound)
}

// UpdateLot moves a card to another owning lot.
func (r *ShowCardRepository) UpdateLot(ctx context.Context, cardID, lotID string) error {
	result, err := r.getQuerier().ExecContext(ctx,
		`UPDATE show_card SET lot_id = ? WHERE id = ?`,
		lotID, cardID,
	)
	if err != nil {
		return fmt.Errorf("failed to update show card lot: %w", err)
	}

	return expectOneRow(result, apperrors.ErrShowCardNotFound)
}

// CountByStatus returns the number of cards per status owned by a lot.
func (r *ShowCardRepository) CountByStatus(ctx context.Context, lotID string) (map[model.CardStatus]int, error) {
	rows, err := r.getQuerier().QueryContext(ctx,
		`SELECT status, COUNT(*) FROM show_card WHERE lot_id = ? GROUP BY status`,
		lotID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count show cards: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.CardStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan show card counts: %w", err)
		}
		counts[model.CardStatus(status)] = count
	}

	return counts, rows.Err()
}

// CountAvailable returns the number of available cards owned by a lot.
func (r *ShowCardRepository) CountAvailable(ctx context.Context, lotID string) (int, error) {
	var count int
	err := r.getQuerier().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM show_card WHERE lot_id = ? AND status = 'available'`,
		lotID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count available show cards: %w", err)
	}
	return count, nil
}

func scanShowCard(row scanner) (model.ShowCard, error) {
	var card model.ShowCard
	var askingPrice decimal.NullDecimal
	var destination sql.NullString
	var createdAtStr, status string

	err := row.Scan(
		&card.ID,
		&card.OwnerID,
		&card.LotID,
		&card.Name,
		&askingPrice,
		&status,
		&destination,
		&createdAtStr,
	)
	if err != nil {
		return model.ShowCard{}, err
	}

	if askingPrice.Valid {
		price := askingPrice.Decimal
		card.AskingPrice = &price
	}
	card.Status = model.CardStatus(status)
	card.DestinationLotID = destination.String

	if card.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.ShowCard{}, err
	}

	return card, nil
}
