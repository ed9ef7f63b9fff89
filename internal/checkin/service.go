package checkin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=checkin
type Repository interface {
	CreateCheckIn(ctx context.Context, c *CheckIn) error
	GetCheckIn(ctx context.Context, id string) (*CheckIn, error)
	ListCheckIns(ctx context.Context, filter ListFilter) ([]*CheckIn, error)
	UpdateCheckIn(ctx context.Context, c *CheckIn) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	DeleteCheckIn(ctx context.Context, id string) error
}

// PatientLookup resolves the patient a visit refers to.
type PatientLookup interface {
	Get(ctx context.Context, id string) (*patient.Patient, error)
}

type Service struct {
	repo     Repository
	patients PatientLookup
	now      func() time.Time
}

func NewService(repo Repository, patients PatientLookup) *Service {
	return &Service{repo: repo, patients: patients, now: time.Now}
}

type CreateParams struct {
	PatientID   string
	PatientName string
	OwnerName   string
	Doctor      string
	Date        time.Time

	Complaint   string
	Subjective  string
	Objective   string
	Assessment  string
	Plan        string
	Procedures  string
	Medications string
	Followup    string

	Status string // optional, defaults to open
}

// UpdateParams edits the clinical record. Nil fields are left untouched.
type UpdateParams struct {
	Doctor      *string
	Date        *time.Time
	Complaint   *string
	Subjective  *string
	Objective   *string
	Assessment  *string
	Plan        *string
	Procedures  *string
	Medications *string
	Followup    *string
}

type ListFilter struct {
	Status    Status
	Query     string // matches patient name, owner, doctor or complaint
	PatientID string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*CheckIn, error) {
	if err := apperr.Required("doctor", params.Doctor); err != nil {
		return nil, err
	}

	if params.Date.IsZero() {
		return nil, apperr.Validation("date is required")
	}

	status := StatusOpen

	if strings.TrimSpace(params.Status) != "" {
		parsed, err := ParseStatus(params.Status)
		if err != nil {
			return nil, err
		}

		status = parsed
	}

	c := &CheckIn{
		ID:          NewID(s.now()),
		PatientName: strings.TrimSpace(params.PatientName),
		OwnerName:   strings.TrimSpace(params.OwnerName),
		Doctor:      strings.TrimSpace(params.Doctor),
		Date:        params.Date,
		Complaint:   params.Complaint,
		Subjective:  params.Subjective,
		Objective:   params.Objective,
		Assessment:  params.Assessment,
		Plan:        params.Plan,
		Procedures:  params.Procedures,
		Medications: params.Medications,
		Followup:    params.Followup,
		Status:      status,
	}

	if id := strings.TrimSpace(params.PatientID); id != "" {
		p, err := s.patients.Get(ctx, id)

		switch {
		case err == nil:
			c.PatientID = p.ID
			c.PatientName = p.Name
			c.OwnerName = p.OwnerName
		case errors.Is(err, patient.ErrNotFound):
			// Unknown patients are not linked; the request's names are kept.
		default:
			return nil, err
		}
	}

	if err := s.repo.CreateCheckIn(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*CheckIn, error) {
	return s.repo.GetCheckIn(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*CheckIn, error) {
	return s.repo.ListCheckIns(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*CheckIn, error) {
	if params.Doctor != nil {
		if err := apperr.Required("doctor", *params.Doctor); err != nil {
			return nil, err
		}
	}

	if params.Date != nil && params.Date.IsZero() {
		return nil, apperr.Validation("date is required")
	}

	c, err := s.repo.GetCheckIn(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Doctor != nil {
		c.Doctor = strings.TrimSpace(*params.Doctor)
	}

	if params.Date != nil {
		c.Date = *params.Date
	}

	for _, f := range []struct {
		dst *string
		src *string
	}{
		{&c.Complaint, params.Complaint},
		{&c.Subjective, params.Subjective},
		{&c.Objective, params.Objective},
		{&c.Assessment, params.Assessment},
		{&c.Plan, params.Plan},
		{&c.Procedures, params.Procedures},
		{&c.Medications, params.Medications},
		{&c.Followup, params.Followup},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}

	if err := s.repo.UpdateCheckIn(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// SetStatus moves a visit between open and done, in either direction.
func (s *Service) SetStatus(ctx context.Context, id, raw string) error {
	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteCheckIn(ctx, id)
}
