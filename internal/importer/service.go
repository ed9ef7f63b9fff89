package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

//go:generate mockgen -source=service.go -destination=importer_mock.go -package=importer
type PatientImporter interface {
	Import(ctx context.Context, patients []*patient.Patient) (int, error)
}

type InvoiceImporter interface {
	Import(ctx context.Context, invoices []*invoice.Invoice) (int, error)
}

// MethodNormalizer maps a raw payment label to a clinic payment method.
type MethodNormalizer interface {
	Normalize(ctx context.Context, raw string) (string, error)
}

// Result summarises one imported file. Rows counts parsed records; records
// whose id already exists are counted in Skipped, unparseable rows in Rejected.
type Result struct {
	Kind     Kind
	Charset  string
	Rows     int
	Inserted int
	Skipped  int
	Rejected []RowError
}

type Service struct {
	patients PatientImporter
	invoices InvoiceImporter
	methods  MethodNormalizer
}

func NewService(patients PatientImporter, invoices InvoiceImporter, methods MethodNormalizer) *Service {
	return &Service{patients: patients, invoices: invoices, methods: methods}
}

// Import reads a clinic CSV export of the given kind and stores its records,
// leaving existing records untouched.
func (s *Service) Import(ctx context.Context, kind Kind, r io.Reader) (*Result, error) {
	if _, ok := profiles[kind]; !ok {
		return nil, apperr.Validation("kind must be one of patients, invoices")
	}

	t, err := readTable(r, kind)
	if err != nil {
		return nil, err
	}

	res := &Result{Kind: kind, Charset: t.charset}

	switch kind {
	case KindPatients:
		patients, rejected := parsePatients(t)
		res.Rows, res.Rejected = len(patients), rejected

		res.Inserted, err = s.patients.Import(ctx, patients)
	case KindInvoices:
		invoices, rejected := parseInvoices(t)
		res.Rows, res.Rejected = len(invoices), rejected

		if err := s.normalizeMethods(ctx, invoices); err != nil {
			return nil, err
		}

		res.Inserted, err = s.invoices.Import(ctx, invoices)
	}

	if err != nil {
		return nil, err
	}

	res.Skipped = res.Rows - res.Inserted

	return res, nil
}

func (s *Service) normalizeMethods(ctx context.Context, invoices []*invoice.Invoice) error {
	seen := make(map[string]string)

	for _, inv := range invoices {
		if inv.Method == "" {
			continue
		}

		method, ok := seen[inv.Method]
		if !ok {
			var err error

			method, err = s.methods.Normalize(ctx, inv.Method)
			if err != nil {
				return fmt.Errorf("normalising payment method %q: %w", inv.Method, err)
			}

			seen[inv.Method] = method
		}

		inv.Method = method
	}

	return nil
}
