package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vetclinic/internal/checkin"
	"github.com/MrJamesThe3rd/vetclinic/internal/database"
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

const selectCheckInColumns = `
	id, patient_id, patient_name, owner_name, doctor, date,
	complaint, subjective, objective, assessment, plan, procedures, medications, followup,
	status, created_at
`

func scanCheckIn(s scanner) (*checkin.CheckIn, error) {
	var c checkin.CheckIn

	var status string

	var patientID, patientName, ownerName sql.NullString

	var complaint, subjective, objective, assessment, plan, procedures, medications, followup sql.NullString

	if err := s.Scan(
		&c.ID, &patientID, &patientName, &ownerName, &c.Doctor, &c.Date,
		&complaint, &subjective, &objective, &assessment, &plan, &procedures, &medications, &followup,
		&status, &c.CreatedAt,
	); err != nil {
		return nil, err
	}

	c.PatientID = patientID.String
	c.PatientName = patientName.String
	c.OwnerName = ownerName.String
	c.Complaint = complaint.String
	c.Subjective = subjective.String
	c.Objective = objective.String
	c.Assessment = assessment.String
	c.Plan = plan.String
	c.Procedures = procedures.String
	c.Medications = medications.String
	c.Followup = followup.String
	c.Status = checkin.Status(status)

	return &c, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateCheckIn(ctx context.Context, c *checkin.CheckIn) error {
	query := `
		INSERT INTO checkins (id, patient_id, patient_name, owner_name, doctor, date,
			complaint, subjective, objective, assessment, plan, procedures, medications, followup, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.ID, nullable(c.PatientID), nullable(c.PatientName), nullable(c.OwnerName), c.Doctor, c.Date,
		nullable(c.Complaint), nullable(c.Subjective), nullable(c.Objective), nullable(c.Assessment),
		nullable(c.Plan), nullable(c.Procedures), nullable(c.Medications), nullable(c.Followup),
		c.Status,
	).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating check-in: %w", err)
	}

	return nil
}

func (s *Store) GetCheckIn(ctx context.Context, id string) (*checkin.CheckIn, error) {
	query := `SELECT ` + selectCheckInColumns + ` FROM checkins WHERE id = $1`

	c, err := scanCheckIn(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, checkin.ErrNotFound
		}

		return nil, fmt.Errorf("getting check-in: %w", err)
	}

	return c, nil
}

func (s *Store) ListCheckIns(ctx context.Context, filter checkin.ListFilter) ([]*checkin.CheckIn, error) {
	query := `SELECT ` + selectCheckInColumns + ` FROM checkins WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, filter.Status)
		argIdx++
	}

	if filter.PatientID != "" {
		query += fmt.Sprintf(" AND patient_id = $%d", argIdx)

		args = append(args, filter.PatientID)
		argIdx++
	}

	if filter.Query != "" {
		query += fmt.Sprintf(` AND (patient_name ILIKE $%[1]d OR owner_name ILIKE $%[1]d
			OR doctor ILIKE $%[1]d OR complaint ILIKE $%[1]d)`, argIdx)

		args = append(args, database.ContainsPattern(filter.Query))
	}

	query += " ORDER BY date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing check-ins: %w", err)
	}
	defer rows.Close()

	checkIns := []*checkin.CheckIn{}

	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning check-in: %w", err)
		}

		checkIns = append(checkIns, c)
	}

	return checkIns, rows.Err()
}

func (s *Store) UpdateCheckIn(ctx context.Context, c *checkin.CheckIn) error {
	query := `
		UPDATE checkins
		SET doctor = $1, date = $2, complaint = $3, subjective = $4, objective = $5,
			assessment = $6, plan = $7, procedures = $8, medications = $9, followup = $10
		WHERE id = $11
	`

	res, err := s.db.ExecContext(ctx, query,
		c.Doctor, c.Date,
		nullable(c.Complaint), nullable(c.Subjective), nullable(c.Objective), nullable(c.Assessment),
		nullable(c.Plan), nullable(c.Procedures), nullable(c.Medications), nullable(c.Followup),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating check-in: %w", err)
	}

	return expectOne(res, "updating check-in")
}

func (s *Store) UpdateStatus(ctx context.Context, id string, status checkin.Status) error {
	res, err := s.db.ExecContext(ctx, `UPDATE checkins SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("updating check-in status: %w", err)
	}

	return expectOne(res, "updating check-in status")
}

func (s *Store) DeleteCheckIn(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM checkins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting check-in: %w", err)
	}

	return expectOne(res, "deleting check-in")
}

func expectOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return checkin.ErrNotFound
	}

	return nil
}
