// Package stats aggregates dashboard figures across patients, visits and invoices.
package stats

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type StatusTotals struct {
	Status  string
	Count   int64
	Total   decimal.Decimal
	Paid    decimal.Decimal
	Balance decimal.Decimal
}

type CheckInCounts struct {
	Open  int64
	Done  int64
	OnDay int64 // visits dated on the requested day
}

type Dashboard struct {
	Patients      int64
	OpenCheckIns  int64
	DoneCheckIns  int64
	TodayCheckIns int64

	Invoices    int64
	Revenue     decimal.Decimal // sum of paid amounts
	Outstanding decimal.Decimal // sum of balances
	ByStatus    []StatusTotals
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stats
type Repository interface {
	CountPatients(ctx context.Context) (int64, error)
	CountCheckIns(ctx context.Context, day time.Time) (CheckInCounts, error)
	InvoiceTotals(ctx context.Context) ([]StatusTotals, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard

	var err error

	if d.Patients, err = s.repo.CountPatients(ctx); err != nil {
		return nil, err
	}

	visits, err := s.repo.CountCheckIns(ctx, s.now())
	if err != nil {
		return nil, err
	}

	d.OpenCheckIns, d.DoneCheckIns, d.TodayCheckIns = visits.Open, visits.Done, visits.OnDay

	if d.ByStatus, err = s.repo.InvoiceTotals(ctx); err != nil {
		return nil, err
	}

	for _, st := range d.ByStatus {
		d.Invoices += st.Count
		d.Revenue = d.Revenue.Add(st.Paid)
		d.Outstanding = d.Outstanding.Add(st.Balance)
	}

	return &d, nil
}
