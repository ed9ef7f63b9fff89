package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vetclinic/internal/counter"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Next issues the current value of key and increments it in a single statement,
// so concurrent callers never observe the same value.
func Next(ctx context.Context, q Querier, key string) (int64, error) {
	query := `
		UPDATE counters
		SET value = value + 1
		WHERE key = $1
		RETURNING value - 1
	`

	var v int64
	if err := q.QueryRowContext(ctx, query, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, counter.ErrUnknownKey
		}

		return 0, fmt.Errorf("incrementing counter: %w", err)
	}

	return v, nil
}

func (s *Store) Next(ctx context.Context, key string) (int64, error) {
	return Next(ctx, s.db, key)
}

func (s *Store) Ensure(ctx context.Context, key string, atLeast int64) error {
	query := `
		UPDATE counters
		SET value = GREATEST(value, $2)
		WHERE key = $1
	`

	res, err := s.db.ExecContext(ctx, query, key, atLeast)
	if err != nil {
		return fmt.Errorf("raising counter: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("raising counter: %w", err)
	}

	if n == 0 {
		return counter.ErrUnknownKey
	}

	return nil
}

func (s *Store) List(ctx context.Context) ([]counter.Counter, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM counters ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing counters: %w", err)
	}
	defer rows.Close()

	var counters []counter.Counter

	for rows.Next() {
		var c counter.Counter
		if err := rows.Scan(&c.Key, &c.Value); err != nil {
			return nil, fmt.Errorf("scanning counter: %w", err)
		}

		counters = append(counters, c)
	}

	return counters, rows.Err()
}
