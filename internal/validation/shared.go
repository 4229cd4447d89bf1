package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Show-Ledger-Backend/internal/apperrors"
)

// Length bounds for free text on ledger records.
const (
	MinReasonLength = 10
	MaxReasonLength = 500
	MaxNotesLength  = 500
	MaxNameLength   = 100
)

const dateLayout = "2006-01-02"

// Error collects field-level validation failures. It unwraps to
// apperrors.ErrValidation.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error {
	return apperrors.ErrValidation
}

func result(fields map[string]string) error {
	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}

// ValidateReason checks a correction or deletion reason: after trimming it must
// be between MinReasonLength and MaxReasonLength characters.
func ValidateReason(field, reason string) error {
	fields := make(map[string]string)
	checkReason(fields, field, reason)
	return result(fields)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(str string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(str))
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return t, nil
}

func checkReason(fields map[string]string, field, reason string) {
	n := utf8.RuneCountInString(strings.TrimSpace(reason))
	switch {
	case n < MinReasonLength:
		fields[field] = fmt.Sprintf("must be at least %d characters", MinReasonLength)
	case n > MaxReasonLength:
		fields[field] = fmt.Sprintf("must be %d characters or less", MaxReasonLength)
	}
}

func checkNotes(fields map[string]string, field, notes string) {
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		fields[field] = fmt.Sprintf("must be %d characters or less", MaxNotesLength)
	}
}

func checkName(fields map[string]string, field, name string) {
	if strings.TrimSpace(name) == "" {
		fields[field] = field + " is required"
	} else if utf8.RuneCountInString(name) > MaxNameLength {
		fields[field] = fmt.Sprintf("must be %d characters or less", MaxNameLength)
	}
}

// checkAmount requires a positive amount with at most two decimal places.
func checkAmount(fields map[string]string, field string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		fields[field] = field + " must be positive"
	} else if !amount.Equal(amount.Round(2)) {
		fields[field] = field + " must have at most two decimal places"
	}
}

// checkNonNegativeAmount allows zero, for costs such as a free table.
func checkNonNegativeAmount(fields map[string]string, field string, amount decimal.Decimal) {
	if amount.IsNegative() {
		fields[field] = field + " cannot be negative"
	} else if !amount.Equal(amount.Round(2)) {
		fields[field] = field + " must have at most two decimal places"
	}
}

// checkPastDate requires a calendar date that is not after today.
func checkPastDate(fields map[string]string, field, value string, now time.Time) {
	if strings.TrimSpace(value) == "" {
		fields[field] = field + " is required"
		return
	}
	d, err := ParseDate(value)
	if err != nil {
		fields[field] = err.Error()
		return
	}
	today := now.UTC().Format(dateLayout)
	if d.Format(dateLayout) > today {
		fields[field] = field + " cannot be in the future"
	}
}

func checkUUID(fields map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		fields[field] = field + " is required"
		return
	}
	if err := ValidateUUID(value); err != nil {
		fields[field] = "must be a valid UUID"
	}
}

func checkOptionalUUID(fields map[string]string, field, value string) {
	if value == "" {
		return
	}
	if err := ValidateUUID(value); err != nil {
		fields[field] = "must be a valid UUID"
	}
}
