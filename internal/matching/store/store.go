package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vetclinic/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, raw string) (string, error) {
	query := `
		SELECT method
		FROM method_mappings
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LOWER(raw_pattern) = LOWER($1) DESC, LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var method string

	err := s.db.QueryRowContext(ctx, query, raw).Scan(&method)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding method mapping: %w", err)
	}

	return method, nil
}

func (s *Store) SaveMapping(ctx context.Context, m matching.Mapping) error {
	query := `
		INSERT INTO method_mappings (raw_pattern, method, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (raw_pattern) DO UPDATE SET method = EXCLUDED.method
	`

	if _, err := s.db.ExecContext(ctx, query, m.RawPattern, m.Method); err != nil {
		return fmt.Errorf("saving method mapping: %w", err)
	}

	return nil
}

func (s *Store) ListMappings(ctx context.Context) ([]matching.Mapping, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT raw_pattern, method FROM method_mappings ORDER BY method, raw_pattern`)
	if err != nil {
		return nil, fmt.Errorf("listing method mappings: %w", err)
	}
	defer rows.Close()

	mappings := []matching.Mapping{}

	for rows.Next() {
		var m matching.Mapping
		if err := rows.Scan(&m.RawPattern, &m.Method); err != nil {
			return nil, fmt.Errorf("scanning method mapping: %w", err)
		}

		mappings = append(mappings, m)
	}

	return mappings, rows.Err()
}
