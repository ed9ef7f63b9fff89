// Package matching normalises free-form payment method labels ("googlepay",
// "Debit Card") to the clinic's method names using learnable mappings.
package matching

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
)

type Mapping struct {
	RawPattern string
	Method     string
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch prefers an exact case-insensitive match, then the longest pattern
	// contained in raw. It returns "" when nothing matches.
	FindMatch(ctx context.Context, raw string) (string, error)
	SaveMapping(ctx context.Context, mapping Mapping) error
	ListMappings(ctx context.Context) ([]Mapping, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the mapped method for raw, or "" when no mapping applies.
func (s *Service) Suggest(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, raw)
}

// Normalize is Suggest falling back to the trimmed input.
func (s *Service) Normalize(ctx context.Context, raw string) (string, error) {
	method, err := s.Suggest(ctx, raw)
	if err != nil {
		return "", err
	}

	if method == "" {
		return strings.TrimSpace(raw), nil
	}

	return method, nil
}

// Learn stores a mapping, replacing the method of an existing pattern.
func (s *Service) Learn(ctx context.Context, rawPattern, method string) error {
	if err := apperr.Required("raw_pattern", rawPattern); err != nil {
		return err
	}

	if err := apperr.Required("method", method); err != nil {
		return err
	}

	return s.repo.SaveMapping(ctx, Mapping{
		RawPattern: strings.ToLower(strings.TrimSpace(rawPattern)),
		Method:     strings.TrimSpace(method),
	})
}

func (s *Service) List(ctx context.Context) ([]Mapping, error) {
	return s.repo.ListMappings(ctx)
}
