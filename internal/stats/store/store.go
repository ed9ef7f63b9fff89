package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/vetclinic/internal/stats"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CountPatients(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting patients: %w", err)
	}

	return n, nil
}

func (s *Store) CountCheckIns(ctx context.Context, day time.Time) (stats.CheckInCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'open'),
			COUNT(*) FILTER (WHERE status = 'done'),
			COUNT(*) FILTER (WHERE date = $1::date)
		FROM checkins
	`

	var c stats.CheckInCounts
	if err := s.db.QueryRowContext(ctx, query, day.Format(time.DateOnly)).Scan(&c.Open, &c.Done, &c.OnDay); err != nil {
		return stats.CheckInCounts{}, fmt.Errorf("counting check-ins: %w", err)
	}

	return c, nil
}

// InvoiceTotals returns one row per status in a fixed order, including empty statuses.
func (s *Store) InvoiceTotals(ctx context.Context) ([]stats.StatusTotals, error) {
	query := `
		SELECT s.status,
			COUNT(i.ref),
			COALESCE(SUM(i.total), 0),
			COALESCE(SUM(i.paid_amount), 0),
			COALESCE(SUM(i.balance), 0)
		FROM (VALUES ('Draft', 1), ('Outstanding', 2), ('Paid', 3)) AS s(status, ord)
		LEFT JOIN invoices i ON i.status = s.status
		GROUP BY s.status, s.ord
		ORDER BY s.ord
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summing invoices: %w", err)
	}
	defer rows.Close()

	var totals []stats.StatusTotals

	for rows.Next() {
		var t stats.StatusTotals
		if err := rows.Scan(&t.Status, &t.Count, &t.Total, &t.Paid, &t.Balance); err != nil {
			return nil, fmt.Errorf("scanning invoice totals: %w", err)
		}

		totals = append(totals, t)
	}

	return totals, rows.Err()
}
