package counter

import (
	"context"
	"errors"
	"fmt"
)

// Well-known sequence keys. Both are seeded by the schema migration.
const (
	KeyInvoice = "invoice"
	KeyPatient = "patient"
)

var ErrUnknownKey = errors.New("unknown counter key")

// Counter is a named monotonic sequence. Value is the next number to be issued.
type Counter struct {
	Key   string
	Value int64
}

//go:generate mockgen -source=counter.go -destination=repository_mock.go -package=counter
type Repository interface {
	Next(ctx context.Context, key string) (int64, error)
	Ensure(ctx context.Context, key string, atLeast int64) error
	List(ctx context.Context) ([]Counter, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Next returns the current value of key and advances the stored value by one.
func (s *Service) Next(ctx context.Context, key string) (int64, error) {
	v, err := s.repo.Next(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("next %s: %w", key, err)
	}

	return v, nil
}

// Ensure raises the counter so the next issued value is at least atLeast.
// It never moves a counter backwards.
func (s *Service) Ensure(ctx context.Context, key string, atLeast int64) error {
	if err := s.repo.Ensure(ctx, key, atLeast); err != nil {
		return fmt.Errorf("ensure %s: %w", key, err)
	}

	return nil
}

func (s *Service) List(ctx context.Context) ([]Counter, error) {
	return s.repo.List(ctx)
}
