package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Show-Ledger-Backend/internal/model"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

// DefaultDate is the business date builders use unless told otherwise.
var DefaultDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// LotBuilder provides a fluent interface for creating test lots.
//
// Example usage:
//
//	// Simple creation with defaults
//	lot := testutil.NewLot(ownerID).Build(t, db)
//
//	// Customized lot
//	lot := testutil.NewLot(ownerID).
//	    WithName("EstateBox").
//	    WithTotalCost("100").
//	    WithStatus(model.LotStatusClosed).
//	    Build(t, db)
type LotBuilder struct {
	ID           string
	OwnerID      string
	Name         string
	Source       string
	PurchaseDate time.Time
	TotalCost    decimal.Decimal
	Status       model.LotStatus
}

// NewLot creates a LotBuilder with sensible defaults.
func NewLot(ownerID string) *LotBuilder {
	return &LotBuilder{
		ID:           MakeID(),
		OwnerID:      ownerID,
		Name:         MakeName("Test Lot"),
		Source:       "Estate sale",
		PurchaseDate: DefaultDate,
		TotalCost:    decimal.NewFromInt(100),
		Status:       model.LotStatusActive,
	}
}

// WithID sets a custom ID.
func (b *LotBuilder) WithID(id string) *LotBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *LotBuilder) WithName(name string) *LotBuilder {
	b.Name = name
	return b
}

// WithTotalCost sets the purchase cost from a decimal string.
func (b *LotBuilder) WithTotalCost(cost string) *LotBuilder {
	b.TotalCost = decimal.RequireFromString(cost)
	return b
}

// WithStatus sets the lifecycle status.
func (b *LotBuilder) WithStatus(status model.LotStatus) *LotBuilder {
	b.Status = status
	return b
}

// Build creates the lot in the database and returns it.
func (b *LotBuilder) Build(t *testing.T, db *sql.DB) model.Lot {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	var closedAt *time.Time
	if b.Status != model.LotStatusActive {
		closedAt = &now
	}

	query := `
		INSERT INTO lot (id, owner_id, name, source, purchase_date, total_cost, status, closed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var closedAtStr any
	if closedAt != nil {
		closedAtStr = closedAt.Format(timestampLayout)
	}

	_, err := db.Exec(query,
		b.ID, b.OwnerID, b.Name, nullable(b.Source),
		b.PurchaseDate.Format(dateLayout), b.TotalCost.String(), string(b.Status),
		closedAtStr, now.Format(timestampLayout),
	)
	if err != nil {
		t.Fatalf("Failed to create test lot: %v", err)
	}

	return model.Lot{
		ID:           b.ID,
		OwnerID:      b.OwnerID,
		Name:         b.Name,
		Source:       b.Source,
		PurchaseDate: b.PurchaseDate,
		TotalCost:    b.TotalCost,
		Status:       b.Status,
		ClosedAt:     closedAt,
		CreatedAt:    now,
	}
}

// ShowBuilder provides a fluent interface for creating test shows.
//
// Example usage:
//
//	show := testutil.NewShow(ownerID).WithStatus(model.ShowStatusCompleted).Build(t, db)
type ShowBuilder struct {
	ID        string
	OwnerID   string
	Name      string
	Date      time.Time
	TableCost decimal.Decimal
	Status    model.ShowStatus
}

// NewShow creates a ShowBuilder with sensible defaults.
func NewShow(ownerID string) *ShowBuilder {
	return &ShowBuilder{
		ID:        MakeID(),
		OwnerID:   ownerID,
		Name:      MakeName("Card Show"),
		Date:      DefaultDate,
		TableCost: decimal.NewFromInt(25),
		Status:    model.ShowStatusPlanned,
	}
}

// WithName sets a custom name.
func (b *ShowBuilder) WithName(name string) *ShowBuilder {
	b.Name = name
	return b
}

// WithTableCost sets the table fee from a decimal string.
func (b *ShowBuilder) WithTableCost(cost string) *ShowBuilder {
	b.TableCost = decimal.RequireFromString(cost)
	return b
}

// WithStatus sets the lifecycle status.
func (b *ShowBuilder) WithStatus(status model.ShowStatus) *ShowBuilder {
	b.Status = status
	return b
}

// Build creates the show in the database and returns it.
func (b *ShowBuilder) Build(t *testing.T, db *sql.DB) model.Show {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO show (id, owner_id, name, date, table_cost, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.OwnerID, b.Name, b.Date.Format(dateLayout),
		b.TableCost.String(), string(b.Status), now.Format(timestampLayout),
	)
	if err != nil {
		t.Fatalf("Failed to create test show: %v", err)
	}

	return model.Show{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Name:      b.Name,
		Date:      b.Date,
		TableCost: b.TableCost,
		Status:    b.Status,
		CreatedAt: now,
	}
}

// ShowCardBuilder provides a fluent interface for creating test show cards.
//
// Example usage:
//
//	card := testutil.NewShowCard(ownerID, lot.ID).Build(t, db)
//	sold := testutil.NewShowCard(ownerID, lot.ID).WithStatus(model.CardStatusSold).Build(t, db)
type ShowCardBuilder struct {
	ID               string
	OwnerID          string
	LotID            string
	Name             string
	Status           model.CardStatus
	DestinationLotID string
}

// NewShowCard creates an available ShowCardBuilder in the given lot.
func NewShowCard(ownerID, lotID string) *ShowCardBuilder {
	return &ShowCardBuilder{
		ID:      MakeID(),
		OwnerID: ownerID,
		LotID:   lotID,
		Name:    MakeName("Card"),
		Status:  model.CardStatusAvailable,
	}
}

// WithName sets a custom name.
func (b *ShowCardBuilder) WithName(name string) *ShowCardBuilder {
	b.Name = name
	return b
}

// WithStatus sets the card status directly, bypassing the ledger.
func (b *ShowCardBuilder) WithStatus(status model.CardStatus) *ShowCardBuilder {
	b.Status = status
	return b
}

// WithDestinationLot sets the lot a combined card was merged into.
func (b *ShowCardBuilder) WithDestinationLot(lotID string) *ShowCardBuilder {
	b.DestinationLotID = lotID
	return b
}

// Build creates the show card in the database and returns it.
func (b *ShowCardBuilder) Build(t *testing.T, db *sql.DB) model.ShowCard {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO show_card (id, owner_id, lot_id, name, status, destination_lot_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.OwnerID, b.LotID, b.Name, string(b.Status),
		nullable(b.DestinationLotID), now.Format(timestampLayout),
	)
	if err != nil {
		t.Fatalf("Failed to create test show card: %v", err)
	}

	return model.ShowCard{
		ID:               b.ID,
		OwnerID:          b.OwnerID,
		LotID:            b.LotID,
		Name:             b.Name,
		Status:           b.Status,
		DestinationLotID: b.DestinationLotID,
		CreatedAt:        now,
	}
}

// TransactionBuilder inserts raw transaction rows without touching cash or
// card status. Use it to seed inconsistent states; record sales through
// SaleService when the ledger side effects matter.
//
// Example usage:
//
//	tx := testutil.NewTransaction(ownerID).
//	    WithShowCard(card.ID).
//	    WithLot(lot.ID).
//	    WithRevenue("60").
//	    Build(t, db)
type TransactionBuilder struct {
	ID         string
	OwnerID    string
	Type       model.TransactionType
	Revenue    decimal.Decimal
	Quantity   *int
	Date       time.Time
	ShowCardID string
	LotID      string
	ShowID     string
	Deleted    bool
}

// NewTransaction creates a bulk sale TransactionBuilder with sensible defaults.
func NewTransaction(ownerID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:      MakeID(),
		OwnerID: ownerID,
		Type:    model.TransactionTypeBulkSale,
		Revenue: decimal.NewFromInt(10),
		Date:    DefaultDate,
	}
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(typ model.TransactionType) *TransactionBuilder {
	b.Type = typ
	return b
}

// WithRevenue sets the revenue from a decimal string.
func (b *TransactionBuilder) WithRevenue(revenue string) *TransactionBuilder {
	b.Revenue = decimal.RequireFromString(revenue)
	return b
}

// WithQuantity sets the bulk quantity.
func (b *TransactionBuilder) WithQuantity(q int) *TransactionBuilder {
	b.Quantity = &q
	return b
}

// WithDate sets the business date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithShowCard links a show card and switches the type to a show card sale.
func (b *TransactionBuilder) WithShowCard(cardID string) *TransactionBuilder {
	b.ShowCardID = cardID
	if b.Type == model.TransactionTypeBulkSale {
		b.Type = model.TransactionTypeShowCardSale
	}
	return b
}

// WithLot sets the lot attribution.
func (b *TransactionBuilder) WithLot(lotID string) *TransactionBuilder {
	b.LotID = lotID
	return b
}

// WithShow sets the show attribution.
func (b *TransactionBuilder) WithShow(showID string) *TransactionBuilder {
	b.ShowID = showID
	return b
}

// AsDeleted marks the row as soft-deleted.
func (b *TransactionBuilder) AsDeleted() *TransactionBuilder {
	b.Deleted = true
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	var deletedAt *time.Time
	var deletedAtStr, reason any
	if b.Deleted {
		deletedAt = &now
		deletedAtStr = now.Format(timestampLayout)
		reason = "seeded as deleted"
	}

	var quantity any
	if b.Quantity != nil {
		quantity = *b.Quantity
	}

	query := `
		INSERT INTO "transaction" (
			id, owner_id, type, revenue, quantity, date, show_card_id, lot_id, show_id,
			deleted, deleted_at, deletion_reason, correction_count, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.OwnerID, string(b.Type), b.Revenue.String(), quantity,
		b.Date.Format(dateLayout), nullable(b.ShowCardID), nullable(b.LotID), nullable(b.ShowID),
		b.Deleted, deletedAtStr, reason, now.Format(timestampLayout),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	tx := model.Transaction{
		ID:         b.ID,
		OwnerID:    b.OwnerID,
		Type:       b.Type,
		Revenue:    b.Revenue,
		Quantity:   b.Quantity,
		Date:       b.Date,
		ShowCardID: b.ShowCardID,
		LotID:      b.LotID,
		ShowID:     b.ShowID,
		Deleted:    b.Deleted,
		DeletedAt:  deletedAt,
		CreatedAt:  now,
	}
	if b.Deleted {
		tx.DeletionReason = "seeded as deleted"
	}
	return tx
}

// CashTransactionBuilder provides a fluent interface for seeding ledger lines.
//
// Example usage:
//
//	testutil.NewCashTransaction(ownerID, "250").Build(t, db)
type CashTransactionBuilder struct {
	ID            string
	OwnerID       string
	Amount        decimal.Decimal
	Type          model.CashTransactionType
	Date          time.Time
	TransactionID string
	LotID         string
}

// NewCashTransaction creates a deposit of the given amount.
func NewCashTransaction(ownerID, amount string) *CashTransactionBuilder {
	return &CashTransactionBuilder{
		ID:      MakeID(),
		OwnerID: ownerID,
		Amount:  decimal.RequireFromString(amount),
		Type:    model.CashTypeDeposit,
		Date:    DefaultDate,
	}
}

// WithType sets the ledger line type.
func (b *CashTransactionBuilder) WithType(typ model.CashTransactionType) *CashTransactionBuilder {
	b.Type = typ
	return b
}

// ForTransaction links the line to a sale or disposition.
func (b *CashTransactionBuilder) ForTransaction(transactionID string) *CashTransactionBuilder {
	b.TransactionID = transactionID
	return b
}

// Build creates the cash transaction in the database and returns it.
func (b *CashTransactionBuilder) Build(t *testing.T, db *sql.DB) model.CashTransaction {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO cash_transaction (id, owner_id, amount, type, date, transaction_id, lot_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.OwnerID, b.Amount.String(), string(b.Type), b.Date.Format(dateLayout),
		nullable(b.TransactionID), nullable(b.LotID), now.Format(timestampLayout),
	)
	if err != nil {
		t.Fatalf("Failed to create test cash transaction: %v", err)
	}

	return model.CashTransaction{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		Amount:        b.Amount,
		Type:          b.Type,
		Date:          b.Date,
		TransactionID: b.TransactionID,
		LotID:         b.LotID,
		CreatedAt:     now,
	}
}

// ExpenseBuilder provides a fluent interface for creating test expenses.
// Expenses built here have no cash line; use ExpenseService for that.
type ExpenseBuilder struct {
	ID       string
	OwnerID  string
	ShowID   string
	Category string
	Amount   decimal.Decimal
	Date     time.Time
}

// NewExpense creates an ExpenseBuilder with sensible defaults.
func NewExpense(ownerID string) *ExpenseBuilder {
	return &ExpenseBuilder{
		ID:       MakeID(),
		OwnerID:  ownerID,
		Category: "supplies",
		Amount:   decimal.NewFromInt(15),
		Date:     DefaultDate,
	}
}

// WithShow attributes the expense to a show.
func (b *ExpenseBuilder) WithShow(showID string) *ExpenseBuilder {
	b.ShowID = showID
	return b
}

// WithAmount sets the amount from a decimal string.
func (b *ExpenseBuilder) WithAmount(amount string) *ExpenseBuilder {
	b.Amount = decimal.RequireFromString(amount)
	return b
}

// Build creates the expense in the database and returns it.
func (b *ExpenseBuilder) Build(t *testing.T, db *sql.DB) model.Expense {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	query := `
		INSERT INTO expense (id, owner_id, show_id, category, amount, date, deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, FALSE, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.OwnerID, nullable(b.ShowID), b.Category, b.Amount.String(),
		b.Date.Format(dateLayout), now.Format(timestampLayout),
	)
	if err != nil {
		t.Fatalf("Failed to create test expense: %v", err)
	}

	return model.Expense{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		ShowID:    b.ShowID,
		Category:  b.Category,
		Amount:    b.Amount,
		Date:      b.Date,
		CreatedAt: now,
	}
}

// Convenience functions

// CreateLotWithCards creates an active lot holding count available show cards.
//
// Example usage:
//
//	lot, cards := testutil.CreateLotWithCards(t, db, ownerID, "100", 3)
func CreateLotWithCards(t *testing.T, db *sql.DB, ownerID, totalCost string, count int) (model.Lot, []model.ShowCard) {
	t.Helper()

	lot := NewLot(ownerID).WithTotalCost(totalCost).Build(t, db)
	cards := make([]model.ShowCard, count)
	for i := range cards {
		cards[i] = NewShowCard(ownerID, lot.ID).Build(t, db)
	}
	return lot, cards
}
