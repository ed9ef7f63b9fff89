package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/counter"
	"github.com/MrJamesThe3rd/vetclinic/internal/phone"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=patient
type Repository interface {
	CreatePatient(ctx context.Context, p *Patient) error
	GetPatient(ctx context.Context, id string) (*Patient, error)
	ListPatients(ctx context.Context, filter ListFilter) ([]*Patient, error)
	UpdatePatient(ctx context.Context, p *Patient) error
	DeletePatient(ctx context.Context, id string) error

	// ImportPatients inserts patients keeping their ids, skipping ids that already exist.
	// It returns how many rows were inserted.
	ImportPatients(ctx context.Context, patients []*Patient) (int, error)
}

// Sequencer mints patient numbers.
type Sequencer interface {
	Next(ctx context.Context, key string) (int64, error)
	Ensure(ctx context.Context, key string, atLeast int64) error
}

type Service struct {
	repo        Repository
	seq         Sequencer
	phoneRegion string
}

func NewService(repo Repository, seq Sequencer, phoneRegion string) *Service {
	return &Service{repo: repo, seq: seq, phoneRegion: phoneRegion}
}

type CreateParams struct {
	Name      string
	OwnerName string
	Type      string
	Breed     string
	Colour    string
	Age       string
	Gender    string
	Weight    string
	Phone     string
	Email     string
	Address   string
}

// UpdateParams carries a partial update: nil fields keep their stored value.
type UpdateParams struct {
	Name      *string
	OwnerName *string
	Type      *string
	Breed     *string
	Colour    *string
	Age       *string
	Gender    *string
	Weight    *string
	Phone     *string
	Email     *string
	Address   *string
}

type ListFilter struct {
	Query string // case-insensitive substring over id, name, owner, phone and email
	Type  string // case-insensitive species match
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Patient, error) {
	if err := apperr.Required("name", params.Name); err != nil {
		return nil, err
	}

	if err := apperr.Required("owner_name", params.OwnerName); err != nil {
		return nil, err
	}

	n, err := s.seq.Next(ctx, counter.KeyPatient)
	if err != nil {
		return nil, fmt.Errorf("minting patient id: %w", err)
	}

	p := &Patient{
		ID:        FormatID(n),
		Name:      strings.TrimSpace(params.Name),
		OwnerName: strings.TrimSpace(params.OwnerName),
		Type:      strings.TrimSpace(params.Type),
		Breed:     strings.TrimSpace(params.Breed),
		Colour:    strings.TrimSpace(params.Colour),
		Age:       strings.TrimSpace(params.Age),
		Gender:    strings.TrimSpace(params.Gender),
		Weight:    strings.TrimSpace(params.Weight),
		Phone:     phone.Normalize(params.Phone, s.phoneRegion),
		Email:     strings.TrimSpace(params.Email),
		Address:   strings.TrimSpace(params.Address),
	}

	if err := s.repo.CreatePatient(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	return s.repo.GetPatient(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Patient, error) {
	return s.repo.ListPatients(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Patient, error) {
	if params.Name != nil {
		if err := apperr.Required("name", *params.Name); err != nil {
			return nil, err
		}
	}

	if params.OwnerName != nil {
		if err := apperr.Required("owner_name", *params.OwnerName); err != nil {
			return nil, err
		}
	}

	p, err := s.repo.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	apply(&p.Name, params.Name)
	apply(&p.OwnerName, params.OwnerName)
	apply(&p.Type, params.Type)
	apply(&p.Breed, params.Breed)
	apply(&p.Colour, params.Colour)
	apply(&p.Age, params.Age)
	apply(&p.Gender, params.Gender)
	apply(&p.Weight, params.Weight)
	apply(&p.Email, params.Email)
	apply(&p.Address, params.Address)

	if params.Phone != nil {
		p.Phone = phone.Normalize(*params.Phone, s.phoneRegion)
	}

	if err := s.repo.UpdatePatient(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeletePatient(ctx, id)
}

// Import stores already-identified patients (e.g. from a CSV export) and moves
// the patient counter past the highest imported number.
func (s *Service) Import(ctx context.Context, patients []*Patient) (int, error) {
	if len(patients) == 0 {
		return 0, nil
	}

	var highest int64

	for _, p := range patients {
		p.Phone = phone.Normalize(p.Phone, s.phoneRegion)

		if n, ok := ParseID(p.ID); ok && n > highest {
			highest = n
		}
	}

	inserted, err := s.repo.ImportPatients(ctx, patients)
	if err != nil {
		return 0, fmt.Errorf("importing patients: %w", err)
	}

	if highest > 0 {
		if err := s.seq.Ensure(ctx, counter.KeyPatient, highest+1); err != nil {
			return inserted, fmt.Errorf("syncing patient counter: %w", err)
		}
	}

	return inserted, nil
}
