package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vetclinic/internal/database"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectPatientColumns = `
	id, name, owner_name, type, breed, colour, age, gender, weight, phone, email, address, created_at
`

// scanPatient expects the column order of selectPatientColumns.
func scanPatient(s scanner) (*patient.Patient, error) {
	var p patient.Patient

	var typ, breed, colour, age, gender, weight, phone, email, address sql.NullString

	if err := s.Scan(
		&p.ID, &p.Name, &p.OwnerName,
		&typ, &breed, &colour, &age, &gender, &weight,
		&phone, &email, &address, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Type = typ.String
	p.Breed = breed.String
	p.Colour = colour.String
	p.Age = age.String
	p.Gender = gender.String
	p.Weight = weight.String
	p.Phone = phone.String
	p.Email = email.String
	p.Address = address.String

	return &p, nil
}

// nullable stores blank optional fields as NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreatePatient(ctx context.Context, p *patient.Patient) error {
	query := `
		INSERT INTO patients (id, name, owner_name, type, breed, colour, age, gender, weight, phone, email, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.OwnerName,
		nullable(p.Type), nullable(p.Breed), nullable(p.Colour), nullable(p.Age),
		nullable(p.Gender), nullable(p.Weight), nullable(p.Phone), nullable(p.Email),
		nullable(p.Address),
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating patient: %w", err)
	}

	return nil
}

func (s *Store) GetPatient(ctx context.Context, id string) (*patient.Patient, error) {
	query := `SELECT ` + selectPatientColumns + ` FROM patients WHERE id = $1`

	p, err := scanPatient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, patient.ErrNotFound
		}

		return nil, fmt.Errorf("getting patient: %w", err)
	}

	return p, nil
}

func (s *Store) ListPatients(ctx context.Context, filter patient.ListFilter) ([]*patient.Patient, error) {
	query := `SELECT ` + selectPatientColumns + ` FROM patients WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Query != "" {
		query += fmt.Sprintf(` AND (id ILIKE $%[1]d OR name ILIKE $%[1]d OR owner_name ILIKE $%[1]d
			OR phone ILIKE $%[1]d OR email ILIKE $%[1]d)`, argIdx)

		args = append(args, database.ContainsPattern(filter.Query))
		argIdx++
	}

	if filter.Type != "" {
		query += fmt.Sprintf(" AND LOWER(type) = LOWER($%d)", argIdx)

		args = append(args, filter.Type)
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	defer rows.Close()

	patients := []*patient.Patient{}

	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning patient: %w", err)
		}

		patients = append(patients, p)
	}

	return patients, rows.Err()
}

func (s *Store) UpdatePatient(ctx context.Context, p *patient.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, owner_name = $2, type = $3, breed = $4, colour = $5, age = $6,
			gender = $7, weight = $8, phone = $9, email = $10, address = $11
		WHERE id = $12
	`

	res, err := s.db.ExecContext(ctx, query,
		p.Name, p.OwnerName,
		nullable(p.Type), nullable(p.Breed), nullable(p.Colour), nullable(p.Age),
		nullable(p.Gender), nullable(p.Weight), nullable(p.Phone), nullable(p.Email),
		nullable(p.Address), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating patient: %w", err)
	}

	return expectOne(res, "updating patient")
}

// DeletePatient removes the patient. The schema cascades to check-ins and
// detaches invoices.
func (s *Store) DeletePatient(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting patient: %w", err)
	}

	return expectOne(res, "deleting patient")
}

func (s *Store) ImportPatients(ctx context.Context, patients []*patient.Patient) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO patients (id, name, owner_name, type, breed, colour, age, gender, weight, phone, email, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, COALESCE($13, NOW()))
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing patient import: %w", err)
	}
	defer stmt.Close()

	inserted := 0

	for _, p := range patients {
		var createdAt sql.NullTime
		if !p.CreatedAt.IsZero() {
			createdAt = sql.NullTime{Time: p.CreatedAt, Valid: true}
		}

		res, err := stmt.ExecContext(ctx,
			p.ID, p.Name, p.OwnerName,
			nullable(p.Type), nullable(p.Breed), nullable(p.Colour), nullable(p.Age),
			nullable(p.Gender), nullable(p.Weight), nullable(p.Phone), nullable(p.Email),
			nullable(p.Address), createdAt,
		)
		if err != nil {
			return 0, fmt.Errorf("importing patient %s: %w", p.ID, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("importing patient %s: %w", p.ID, err)
		}

		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing patient import: %w", err)
	}

	return inserted, nil
}

func expectOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return patient.ErrNotFound
	}

	return nil
}
