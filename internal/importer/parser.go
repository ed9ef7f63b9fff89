package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	enc "github.com/MrJamesThe3rd/vetclinic/internal/encoding"
	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

// DefaultItemName labels the single line item created for an imported invoice.
const DefaultItemName = "Consultation / Treatment"

// headerScanRows bounds how far down a file the header row is looked for.
const headerScanRows = 10

var timeLayouts = []string{
	time.RFC3339,
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// RowError records a data row that could not be turned into a record.
type RowError struct {
	Row     int // 1-based line in the file
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// table is a decoded CSV file positioned after its header row.
type table struct {
	charset string
	cols    columns
	rows    [][]string
	first   int // 1-based line number of rows[0]
}

func readTable(r io.Reader, kind Kind) (*table, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.Validation("read csv: %s", err)
	}

	profile := profiles[kind]

	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		if cols, ok := profile.match(rows[i]); ok {
			return &table{charset: charset, cols: cols, rows: rows[i+1:], first: i + 2}, nil
		}
	}

	return nil, apperr.Validation("no %s header found: expected columns %s", kind, strings.Join(profile.requiredAliases(), ", "))
}

func (p Profile) requiredAliases() []string {
	var names []string

	for _, f := range p.fields {
		if f.required {
			names = append(names, f.aliases[0])
		}
	}

	return names
}

// sniffDelimiter picks ';' when the first line has more semicolons than commas.
func sniffDelimiter(br *bufio.Reader) rune {
	line, _ := br.Peek(br.Size())
	if i := strings.IndexByte(string(line), '\n'); i >= 0 {
		line = line[:i]
	}

	if strings.Count(string(line), ";") > strings.Count(string(line), ",") {
		return ';'
	}

	return ','
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// legacyPatientID maps a numeric id from the old system to a patient id.
// Ids already in the current format are kept.
func legacyPatientID(raw string) (string, bool) {
	if _, ok := patient.ParseID(raw); ok {
		return raw, true
	}

	n, err := strconv.ParseInt(strings.TrimSuffix(raw, ".0"), 10, 64)
	if err != nil || n < 0 {
		return "", false
	}

	return patient.FormatID(n), true
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}

	return s
}

func parsePatients(t *table) ([]*patient.Patient, []RowError) {
	var (
		out  []*patient.Patient
		errs []RowError
	)

	for i, row := range t.rows {
		line := t.first + i

		if isBlank(row) {
			continue
		}

		id, ok := legacyPatientID(t.cols.get(row, "id"))
		if !ok {
			errs = append(errs, RowError{Row: line, Message: "invalid patient_id"})
			continue
		}

		species := t.cols.get(row, "species")
		if species == "0" {
			species = "Other"
		}

		p := &patient.Patient{
			ID:        id,
			Name:      orUnknown(t.cols.get(row, "name")),
			OwnerName: orUnknown(t.cols.get(row, "owner")),
			Type:      species,
			Breed:     t.cols.get(row, "breed"),
			Colour:    t.cols.get(row, "colour"),
			Age:       t.cols.get(row, "age"),
			Gender:    t.cols.get(row, "sex"),
			Weight:    t.cols.get(row, "weight"),
			Phone:     t.cols.get(row, "phone"),
			Email:     t.cols.get(row, "email"),
			Address:   t.cols.get(row, "address"),
		}

		if created, ok := parseTime(t.cols.get(row, "created")); ok {
			p.CreatedAt = created
		}

		out = append(out, p)
	}

	return out, errs
}

// parseInvoices builds one invoice per row with a single line item carrying the
// whole amount. The CSV total is after discount.
func parseInvoices(t *table) ([]*invoice.Invoice, []RowError) {
	var (
		out  []*invoice.Invoice
		errs []RowError
	)

	for i, row := range t.rows {
		line := t.first + i

		if isBlank(row) {
			continue
		}

		ref := t.cols.get(row, "ref")
		if ref == "" {
			errs = append(errs, RowError{Row: line, Message: "missing ref"})
			continue
		}

		created, hasCreated := parseTime(t.cols.get(row, "created"))

		date, ok := parseTime(t.cols.get(row, "date"))
		if !ok && hasCreated {
			date, ok = created, true
		}

		if !ok {
			errs = append(errs, RowError{Row: line, Message: "invalid date"})
			continue
		}

		status, err := invoice.ParseStatus(t.cols.get(row, "status"))
		if err != nil {
			status = invoice.StatusDraft
		}

		total := invoice.ParseMoney(t.cols.get(row, "total"))
		discount := invoice.ParseMoney(t.cols.get(row, "discount"))
		paid := invoice.ParseMoney(t.cols.get(row, "paid"))

		totals := invoice.Calculate([]invoice.LineInput{{
			Name:      DefaultItemName,
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: total.Add(discount),
			Discount:  discount,
		}}, decimal.Zero)

		inv := &invoice.Invoice{
			Ref:         ref,
			PatientName: t.cols.get(row, "patient_name"),
			PatientType: t.cols.get(row, "patient_type"),
			OwnerName:   orUnknown(t.cols.get(row, "owner")),
			Phone:       t.cols.get(row, "phone"),
			Date:        dateOf(date),
			Subtotal:    totals.Subtotal,
			Discount:    totals.Discount,
			Total:       totals.Total,
			Method:      t.cols.get(row, "method"),
			Status:      status,
			Notes:       t.cols.get(row, "notes"),
			Items:       totals.Items,
		}

		inv.Paid, inv.Balance = invoice.ApplyStatus(status, totals.Total, paid)

		if id, ok := legacyPatientID(t.cols.get(row, "patient_id")); ok {
			inv.PatientID = id
		}

		if inv.PatientType == "0" {
			inv.PatientType = "Other"
		}

		if hasCreated {
			inv.CreatedAt = created
		}

		out = append(out, inv)
	}

	return out, errs
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
