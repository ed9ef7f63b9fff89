package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/counter"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

// RefFunc turns an invoice counter value into a reference.
type RefFunc func(n int64) string

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// CreateInvoice assigns inv.Ref from the next invoice counter value and stores the
	// invoice with its items, all in one transaction.
	CreateInvoice(ctx context.Context, inv *Invoice, ref RefFunc) error
	GetInvoice(ctx context.Context, ref string) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	UpdatePayment(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, ref string) error

	// ImportInvoices inserts invoices with their existing refs, skipping refs that
	// already exist, and returns how many were inserted.
	ImportInvoices(ctx context.Context, invoices []*Invoice) (int, error)
}

// PatientLookup resolves the patient an invoice is billed to.
type PatientLookup interface {
	Get(ctx context.Context, id string) (*patient.Patient, error)
}

// Sequencer moves the invoice counter past imported references.
type Sequencer interface {
	Ensure(ctx context.Context, key string, atLeast int64) error
}

type Service struct {
	repo     Repository
	patients PatientLookup
	seq      Sequencer
	now      func() time.Time
}

func NewService(repo Repository, patients PatientLookup, seq Sequencer) *Service {
	return &Service{repo: repo, patients: patients, seq: seq, now: time.Now}
}

// WithClock replaces the clock used to date invoice references.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateParams struct {
	PatientID   string
	PatientName string
	PatientType string
	OwnerName   string
	Phone       string
	Date        time.Time
	Method      string
	Status      string // optional; derived from the payment when blank
	Paid        decimal.Decimal
	Notes       string
	Items       []LineInput
}

// PaymentParams changes an invoice's status. Paid and Method keep their stored
// values when nil.
type PaymentParams struct {
	Status string
	Paid   *decimal.Decimal
	Method *string
}

type Sort string

const (
	SortDateDesc    Sort = "date_desc"
	SortDateAsc     Sort = "date_asc"
	SortTotalDesc   Sort = "total_desc"
	SortTotalAsc    Sort = "total_asc"
	SortBalanceDesc Sort = "balance_desc"
)

// ParseSort validates a sort key. Blank means SortDateDesc.
func ParseSort(raw string) (Sort, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return SortDateDesc, nil
	}

	for _, s := range []Sort{SortDateDesc, SortDateAsc, SortTotalDesc, SortTotalAsc, SortBalanceDesc} {
		if raw == string(s) {
			return s, nil
		}
	}

	return "", apperr.Validation("sort must be one of date_desc, date_asc, total_desc, total_asc, balance_desc")
}

type ListFilter struct {
	Status Status
	From   *time.Time // inclusive
	To     *time.Time // inclusive
	Query  string     // matches ref, patient name, owner or phone
	Sort   Sort
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Invoice, error) {
	if params.Date.IsZero() {
		return nil, apperr.Validation("date is required")
	}

	if len(params.Items) == 0 {
		return nil, apperr.Validation("at least one item is required")
	}

	for i, item := range params.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, apperr.Validation("items[%d].name is required", i)
		}
	}

	inv := &Invoice{
		PatientName: strings.TrimSpace(params.PatientName),
		PatientType: strings.TrimSpace(params.PatientType),
		OwnerName:   strings.TrimSpace(params.OwnerName),
		Phone:       strings.TrimSpace(params.Phone),
		Date:        params.Date,
		Method:      strings.TrimSpace(params.Method),
		Notes:       params.Notes,
	}

	if err := s.snapshotPatient(ctx, inv, params.PatientID); err != nil {
		return nil, err
	}

	if err := apperr.Required("owner_name", inv.OwnerName); err != nil {
		return nil, err
	}

	totals := Calculate(params.Items, params.Paid)

	status, err := initialStatus(params.Status, totals)
	if err != nil {
		return nil, err
	}

	inv.Items = totals.Items
	inv.Subtotal = totals.Subtotal
	inv.Discount = totals.Discount
	inv.Total = totals.Total
	inv.Status = status
	inv.Paid, inv.Balance = ApplyStatus(status, totals.Total, totals.Paid)

	issued := s.now()

	if err := s.repo.CreateInvoice(ctx, inv, func(n int64) string { return FormatRef(issued, n) }); err != nil {
		return nil, err
	}

	return inv, nil
}

// snapshotPatient copies a registered patient's details onto the invoice. An id
// that does not resolve leaves the invoice unlinked with the submitted details.
func (s *Service) snapshotPatient(ctx context.Context, inv *Invoice, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	p, err := s.patients.Get(ctx, id)
	if errors.Is(err, patient.ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	inv.PatientID = p.ID
	inv.PatientName = p.Name
	inv.PatientType = p.Type
	inv.OwnerName = p.OwnerName
	inv.Phone = p.Phone

	return nil
}

func initialStatus(raw string, t Totals) (Status, error) {
	if strings.TrimSpace(raw) != "" {
		return ParseStatus(raw)
	}

	switch {
	case t.Paid.IsPositive() && t.Balance.IsZero():
		return StatusPaid, nil
	case t.Paid.IsPositive():
		return StatusOutstanding, nil
	default:
		return StatusDraft, nil
	}
}

func (s *Service) Get(ctx context.Context, ref string) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, ref)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	if filter.Sort == "" {
		filter.Sort = SortDateDesc
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, apperr.Validation("from must not be after to")
	}

	return s.repo.ListInvoices(ctx, filter)
}

// SetStatus records a payment state change. The stored total is kept; paid
// amount and balance are recomputed for the new status.
func (s *Service) SetStatus(ctx context.Context, ref string, params PaymentParams) (*Invoice, error) {
	status, err := ParseStatus(params.Status)
	if err != nil {
		return nil, err
	}

	inv, err := s.repo.GetInvoice(ctx, ref)
	if err != nil {
		return nil, err
	}

	paid := inv.Paid
	if params.Paid != nil {
		paid = *params.Paid
	}

	if params.Method != nil {
		inv.Method = strings.TrimSpace(*params.Method)
	}

	inv.Status = status
	inv.Paid, inv.Balance = ApplyStatus(status, inv.Total, paid)

	if err := s.repo.UpdatePayment(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, ref string) error {
	return s.repo.DeleteInvoice(ctx, ref)
}

// Import stores invoices carrying their original refs and moves the invoice
// counter past the highest imported number.
func (s *Service) Import(ctx context.Context, invoices []*Invoice) (int, error) {
	if len(invoices) == 0 {
		return 0, nil
	}

	var highest int64

	for _, inv := range invoices {
		if n, ok := ParseRefNumber(inv.Ref); ok && n > highest {
			highest = n
		}
	}

	inserted, err := s.repo.ImportInvoices(ctx, invoices)
	if err != nil {
		return 0, fmt.Errorf("importing invoices: %w", err)
	}

	if highest > 0 {
		if err := s.seq.Ensure(ctx, counter.KeyInvoice, highest+1); err != nil {
			return inserted, fmt.Errorf("syncing invoice counter: %w", err)
		}
	}

	return inserted, nil
}
