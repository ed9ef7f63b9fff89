package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
)

type Status string

const (
	StatusDraft       Status = "Draft"
	StatusPaid        Status = "Paid"
	StatusOutstanding Status = "Outstanding"
)

var ErrNotFound = apperr.NotFound("invoice")

// ParseStatus matches the status name case-insensitively and returns its canonical form.
func ParseStatus(raw string) (Status, error) {
	for _, s := range []Status{StatusDraft, StatusPaid, StatusOutstanding} {
		if strings.EqualFold(strings.TrimSpace(raw), string(s)) {
			return s, nil
		}
	}

	return "", apperr.Validation("status must be one of Draft, Paid, Outstanding")
}

// Invoice is a bill for a visit. The patient and owner fields are a snapshot
// copied at creation; PatientID is cleared when the patient is deleted.
type Invoice struct {
	Ref         string
	PatientID   string
	PatientName string
	PatientType string
	OwnerName   string
	Phone       string
	Date        time.Time

	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Paid     decimal.Decimal
	Balance  decimal.Decimal

	Method    string
	Status    Status
	Notes     string
	Items     []Item
	CreatedAt time.Time
}

type Item struct {
	ID        int64
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

// FormatRef renders an invoice reference such as "IN:01-2411-0005" from the
// issue month and the invoice counter value.
func FormatRef(issued time.Time, n int64) string {
	return fmt.Sprintf("IN:01-%s-%04d", issued.Format("0601"), n)
}

// ParseRefNumber returns the counter part of a reference built by FormatRef.
func ParseRefNumber(ref string) (int64, bool) {
	var yymm string

	var n int64

	if _, err := fmt.Sscanf(strings.Replace(ref, "-", " ", 2), "IN:01 %s %d", &yymm, &n); err != nil {
		return 0, false
	}

	return n, len(yymm) == 4
}
