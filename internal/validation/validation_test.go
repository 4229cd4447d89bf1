package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestValidateReason_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		wantErr bool
	}{
		{"9 characters rejected", strings.Repeat("a", 9), true},
		{"10 characters accepted", strings.Repeat("a", 10), false},
		{"500 characters accepted", strings.Repeat("a", 500), false},
		{"501 characters rejected", strings.Repeat("a", 501), true},
		{"whitespace is trimmed before counting", "   " + strings.Repeat("a", 9) + "   ", true},
		{"multibyte characters count once", strings.Repeat("é", 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReason("correctionNote", tt.reason)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateShowCardSale(t *testing.T) {
	valid := request.RecordShowCardSaleRequest{
		ShowCardID: "550e8400-e29b-41d4-a716-446655440000",
		Revenue:    decimal.RequireFromString("60.00"),
		Date:       "2025-06-01",
	}

	t.Run("accepts a valid sale", func(t *testing.T) {
		assert.NoError(t, ValidateShowCardSale(valid, testNow))
	})

	t.Run("rejects non-positive revenue", func(t *testing.T) {
		req := valid
		req.Revenue = decimal.Zero
		err := ValidateShowCardSale(req, testNow)

		var verr *Error
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, "revenue must be positive", verr.Fields["revenue"])
	})

	t.Run("rejects more than two decimals", func(t *testing.T) {
		req := valid
		req.Revenue = decimal.RequireFromString("60.001")
		assert.Error(t, ValidateShowCardSale(req, testNow))
	})

	t.Run("rejects future dates", func(t *testing.T) {
		req := valid
		req.Date = "2025-06-16"
		err := ValidateShowCardSale(req, testNow)

		var verr *Error
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, "date cannot be in the future", verr.Fields["date"])
	})

	t.Run("accepts today", func(t *testing.T) {
		req := valid
		req.Date = "2025-06-15"
		assert.NoError(t, ValidateShowCardSale(req, testNow))
	})

	t.Run("rejects notes over 500 characters", func(t *testing.T) {
		req := valid
		req.Notes = strings.Repeat("n", 501)
		assert.Error(t, ValidateShowCardSale(req, testNow))
	})
}

func TestValidateDisposition(t *testing.T) {
	cardID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("combined requires destination lot", func(t *testing.T) {
		err := ValidateDisposition(request.RecordDispositionRequest{
			ShowCardID: cardID, Type: "combined", Date: "2025-06-01",
		}, testNow)

		var verr *Error
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, "destinationLotId is required", verr.Fields["destinationLotId"])
	})

	t.Run("lost rejects destination lot", func(t *testing.T) {
		err := ValidateDisposition(request.RecordDispositionRequest{
			ShowCardID: cardID, Type: "lost", DestinationLotID: cardID, Date: "2025-06-01",
		}, testNow)
		assert.Error(t, err)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		err := ValidateDisposition(request.RecordDispositionRequest{
			ShowCardID: cardID, Type: "bulk_sale", Date: "2025-06-01",
		}, testNow)
		assert.Error(t, err)
	})
}

func TestValidateCorrection(t *testing.T) {
	notes := "new notes"

	t.Run("requires at least one change", func(t *testing.T) {
		err := ValidateCorrection(request.CorrectTransactionRequest{CorrectionNote: "typo in the sale notes"}, testNow)

		var verr *Error
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, "at least one field must be corrected", verr.Fields["changes"])
	})

	t.Run("accepts notes change with valid note", func(t *testing.T) {
		err := ValidateCorrection(request.CorrectTransactionRequest{
			Notes: &notes, CorrectionNote: "typo in the sale notes",
		}, testNow)
		assert.NoError(t, err)
	})
}

func TestValidateReassignLot(t *testing.T) {
	lotID := "550e8400-e29b-41d4-a716-446655440000"

	err := ValidateReassignLot(request.ReassignLotRequest{
		FromLotID: lotID, ToLotID: lotID, CorrectionNote: "wrong lot selected",
	})

	var verr *Error
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "destination lot must differ from the current lot", verr.Fields["toLotId"])
}

func TestValidateCashEntry(t *testing.T) {
	t.Run("adjustment may be negative", func(t *testing.T) {
		err := ValidateCashEntry(request.CreateCashEntryRequest{
			Type: "adjustment", Amount: decimal.RequireFromString("-12.50"), Date: "2025-06-01",
		}, testNow)
		assert.NoError(t, err)
	})

	t.Run("withdrawal must be positive", func(t *testing.T) {
		err := ValidateCashEntry(request.CreateCashEntryRequest{
			Type: "withdrawal", Amount: decimal.RequireFromString("-12.50"), Date: "2025-06-01",
		}, testNow)
		assert.Error(t, err)
	})

	t.Run("ledger-only types are rejected", func(t *testing.T) {
		err := ValidateCashEntry(request.CreateCashEntryRequest{
			Type: "reversal", Amount: decimal.RequireFromString("5"), Date: "2025-06-01",
		}, testNow)
		assert.Error(t, err)
	})
}

func TestError_MessageIsSorted(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "second", "a": "first"}}
	assert.Equal(t, "a: first; b: second", err.Error())
}

func TestValidateShow(t *testing.T) {
	t.Run("planned shows may be dated in the future", func(t *testing.T) {
		err := ValidateCreateShow(request.CreateShowRequest{
			Name: "Spring Show", Date: "2030-04-01", TableCost: decimal.RequireFromString("25"),
		})
		assert.NoError(t, err)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		err := ValidateUpdateShowStatus(request.UpdateShowStatusRequest{Status: "cancelled"})

		var verr *Error
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, "invalid status: cancelled", verr.Fields["status"])
	})
}
