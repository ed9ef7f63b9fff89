package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/vetclinic/internal/counter"
	counterstore "github.com/MrJamesThe3rd/vetclinic/internal/counter/store"
	"github.com/MrJamesThe3rd/vetclinic/internal/database"
	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
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

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectInvoiceColumns = `
	ref, patient_id, patient_name, patient_type, owner_name, phone, date,
	subtotal, discount, total, paid_amount, balance, method, status, notes, created_at
`

var sortClauses = map[invoice.Sort]string{
	invoice.SortDateDesc:    "date DESC, created_at DESC",
	invoice.SortDateAsc:     "date ASC, created_at ASC",
	invoice.SortTotalDesc:   "total DESC, date DESC",
	invoice.SortTotalAsc:    "total ASC, date DESC",
	invoice.SortBalanceDesc: "balance DESC, date DESC",
}

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var status string

	var patientID, patientName, patientType, phone, method, notes sql.NullString

	if err := s.Scan(
		&inv.Ref, &patientID, &patientName, &patientType, &inv.OwnerName, &phone, &inv.Date,
		&inv.Subtotal, &inv.Discount, &inv.Total, &inv.Paid, &inv.Balance,
		&method, &status, &notes, &inv.CreatedAt,
	); err != nil {
		return nil, err
	}

	inv.PatientID = patientID.String
	inv.PatientName = patientName.String
	inv.PatientType = patientType.String
	inv.Phone = phone.String
	inv.Method = method.String
	inv.Notes = notes.String
	inv.Status = invoice.Status(status)
	inv.Items = []invoice.Item{}

	return &inv, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice, ref invoice.RefFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	n, err := counterstore.Next(ctx, tx, counter.KeyInvoice)
	if err != nil {
		return fmt.Errorf("minting invoice ref: %w", err)
	}

	inv.Ref = ref(n)

	if err := insertInvoice(ctx, tx, inv, `$2`, nullable(inv.PatientID)); err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	if err := insertItems(ctx, tx, inv); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing invoice: %w", err)
	}

	return nil
}

// insertInvoice writes the header row. patientExpr is the SQL expression used
// for patient_id with patientArg bound to it.
func insertInvoice(ctx context.Context, q execer, inv *invoice.Invoice, patientExpr string, patientArg any) error {
	query := `
		INSERT INTO invoices (ref, patient_id, patient_name, patient_type, owner_name, phone, date,
			subtotal, discount, total, paid_amount, balance, method, status, notes, created_at)
		VALUES ($1, ` + patientExpr + `, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, COALESCE($16, NOW()))
		RETURNING patient_id, created_at
	`

	var createdAt sql.NullTime
	if !inv.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: inv.CreatedAt, Valid: true}
	}

	var patientID sql.NullString

	if err := q.QueryRowContext(ctx, query,
		inv.Ref, patientArg, nullable(inv.PatientName), nullable(inv.PatientType), inv.OwnerName,
		nullable(inv.Phone), inv.Date,
		inv.Subtotal, inv.Discount, inv.Total, inv.Paid, inv.Balance,
		nullable(inv.Method), inv.Status, nullable(inv.Notes), createdAt,
	).Scan(&patientID, &inv.CreatedAt); err != nil {
		return err
	}

	inv.PatientID = patientID.String

	return nil
}

func insertItems(ctx context.Context, q execer, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoice_items (invoice_ref, name, quantity, unit_price, discount, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for i := range inv.Items {
		item := &inv.Items[i]

		if err := q.QueryRowContext(ctx, query,
			inv.Ref, item.Name, item.Quantity, item.UnitPrice, item.Discount, item.Total,
		).Scan(&item.ID); err != nil {
			return fmt.Errorf("creating invoice item: %w", err)
		}
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, ref string) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE ref = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, ref))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	if err := s.loadItems(ctx, []*invoice.Invoice{inv}); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, filter.Status)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	if filter.Query != "" {
		query += fmt.Sprintf(` AND (ref ILIKE $%[1]d OR patient_name ILIKE $%[1]d
			OR owner_name ILIKE $%[1]d OR phone ILIKE $%[1]d)`, argIdx)

		args = append(args, database.ContainsPattern(filter.Query))
	}

	order, ok := sortClauses[filter.Sort]
	if !ok {
		order = sortClauses[invoice.SortDateDesc]
	}

	query += " ORDER BY " + order + ", ref DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*invoice.Invoice{}

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	if err := s.loadItems(ctx, invoices); err != nil {
		return nil, err
	}

	return invoices, nil
}

// loadItems fills Items for all given invoices with a single query.
func (s *Store) loadItems(ctx context.Context, invoices []*invoice.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	byRef := make(map[string]*invoice.Invoice, len(invoices))
	refs := make([]string, 0, len(invoices))

	for _, inv := range invoices {
		byRef[inv.Ref] = inv
		refs = append(refs, inv.Ref)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, invoice_ref, name, quantity, unit_price, discount, total
		FROM invoice_items
		WHERE invoice_ref = ANY($1)
		ORDER BY id
	`, refs)
	if err != nil {
		return fmt.Errorf("listing invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item invoice.Item

		var ref string

		if err := rows.Scan(&item.ID, &ref, &item.Name, &item.Quantity, &item.UnitPrice, &item.Discount, &item.Total); err != nil {
			return fmt.Errorf("scanning invoice item: %w", err)
		}

		if inv, ok := byRef[ref]; ok {
			inv.Items = append(inv.Items, item)
		}
	}

	return rows.Err()
}

func (s *Store) UpdatePayment(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET status = $1, paid_amount = $2, balance = $3, method = $4
		WHERE ref = $5
	`

	res, err := s.db.ExecContext(ctx, query, inv.Status, inv.Paid, inv.Balance, nullable(inv.Method), inv.Ref)
	if err != nil {
		return fmt.Errorf("updating invoice payment: %w", err)
	}

	return expectOne(res, "updating invoice payment")
}

// DeleteInvoice removes the invoice; its items go with it.
func (s *Store) DeleteInvoice(ctx context.Context, ref string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE ref = $1`, ref)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return expectOne(res, "deleting invoice")
}

// ImportInvoices links each invoice to its patient only when that patient is
// registered, so historical invoices for unknown patients still load.
func (s *Store) ImportInvoices(ctx context.Context, invoices []*invoice.Invoice) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	inserted := 0

	for _, inv := range invoices {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM invoices WHERE ref = $1)`, inv.Ref,
		).Scan(&exists); err != nil {
			return 0, fmt.Errorf("checking invoice %s: %w", inv.Ref, err)
		}

		if exists {
			continue
		}

		if err := insertInvoice(ctx, tx, inv,
			`(SELECT id FROM patients WHERE id = $2)`, nullable(inv.PatientID),
		); err != nil {
			return 0, fmt.Errorf("importing invoice %s: %w", inv.Ref, err)
		}

		if err := insertItems(ctx, tx, inv); err != nil {
			return 0, fmt.Errorf("importing invoice %s: %w", inv.Ref, err)
		}

		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing invoice import: %w", err)
	}

	return inserted, nil
}

func expectOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return invoice.ErrNotFound
	}

	return nil
}
