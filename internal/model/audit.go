package model

import "time"

// DiscrepancyKind names a class of ledger drift found by the consistency audit.
type DiscrepancyKind string

const (
	DiscrepancySoldWithoutSale        DiscrepancyKind = "sold_without_sale"
	DiscrepancySaleOnUnsoldCard       DiscrepancyKind = "sale_on_unsold_card"
	DiscrepancyDisposedWithoutRecord  DiscrepancyKind = "disposed_without_record"
	DiscrepancyMissingReversal        DiscrepancyKind = "missing_reversal"
	DiscrepancyClosedLotWithInventory DiscrepancyKind = "closed_lot_with_inventory"
)

// Discrepancy is one finding of the consistency audit.
type Discrepancy struct {
	Kind     DiscrepancyKind `json:"kind"`
	OwnerID  string          `json:"ownerId"`
	EntityID string          `json:"entityId"`
	Detail   string          `json:"detail"`
}

// AuditReport is the result of one consistency audit run.
type AuditReport struct {
	CheckedAt     time.Time     `json:"checkedAt"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

// Clean reports whether the audit found nothing.
func (r AuditReport) Clean() bool {
	return len(r.Discrepancies) == 0
}
