package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
)

// File names inside the export archive.
const (
	InvoicesFile = "invoices.csv"
	ItemsFile    = "invoice_items.csv"
	SummaryFile  = "summary.txt"
)

// invoiceHeader uses the column names the importer recognises, so an export
// can be loaded into another installation.
var invoiceHeader = []string{
	"ref", "date", "patient_id", "patient_name", "patient_type", "owner_name", "mobile_no",
	"payment_type", "subtotal", "final_discount", "total", "paid_amount", "balance", "status", "notes",
}

var itemHeader = []string{"ref", "name", "quantity", "unit_price", "discount", "total"}

type InvoiceLister interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

// Report is the set of invoices issued in a date range, oldest first.
type Report struct {
	From     *time.Time
	To       *time.Time
	Invoices []*invoice.Invoice
}

// Service handles the export of invoices for bookkeeping.
type Service struct {
	invoices InvoiceLister
}

func NewService(invoices InvoiceLister) *Service {
	return &Service{invoices: invoices}
}

// Export collects the invoices dated within [from, to]. Nil bounds are open.
func (s *Service) Export(ctx context.Context, from, to *time.Time) (*Report, error) {
	invoices, err := s.invoices.List(ctx, invoice.ListFilter{From: from, To: to, Sort: invoice.SortDateAsc})
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	return &Report{From: from, To: to, Invoices: invoices}, nil
}

func (s *Service) WriteInvoicesCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(invoiceHeader); err != nil {
		return err
	}

	for _, inv := range r.Invoices {
		if err := cw.Write([]string{
			inv.Ref,
			inv.Date.Format(time.DateOnly),
			inv.PatientID,
			inv.PatientName,
			inv.PatientType,
			inv.OwnerName,
			inv.Phone,
			inv.Method,
			inv.Subtotal.StringFixed(2),
			inv.Discount.StringFixed(2),
			inv.Total.StringFixed(2),
			inv.Paid.StringFixed(2),
			inv.Balance.StringFixed(2),
			string(inv.Status),
			inv.Notes,
		}); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

func (s *Service) WriteItemsCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(itemHeader); err != nil {
		return err
	}

	for _, inv := range r.Invoices {
		for _, item := range inv.Items {
			if err := cw.Write([]string{
				inv.Ref,
				item.Name,
				item.Quantity.String(),
				item.UnitPrice.StringFixed(2),
				item.Discount.StringFixed(2),
				item.Total.StringFixed(2),
			}); err != nil {
				return err
			}
		}
	}

	cw.Flush()

	return cw.Error()
}

// Summary renders a plain-text digest of the report: totals per status and
// per payment method, then one line per invoice.
func (s *Service) Summary(r *Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Invoices %s\n\n", periodLabel(r.From, r.To))

	type bucket struct {
		count int
		total decimal.Decimal
	}

	byStatus := make(map[string]*bucket)
	byMethod := make(map[string]*bucket)

	var total, paid, balance decimal.Decimal

	add := func(m map[string]*bucket, key string, amount decimal.Decimal) {
		b, ok := m[key]
		if !ok {
			b = &bucket{}
			m[key] = b
		}

		b.count++
		b.total = b.total.Add(amount)
	}

	for _, inv := range r.Invoices {
		total = total.Add(inv.Total)
		paid = paid.Add(inv.Paid)
		balance = balance.Add(inv.Balance)

		add(byStatus, string(inv.Status), inv.Total)

		method := inv.Method
		if method == "" {
			method = "Unspecified"
		}

		add(byMethod, method, inv.Paid)
	}

	fmt.Fprintf(&sb, "Count:       %d\n", len(r.Invoices))
	fmt.Fprintf(&sb, "Billed:      %s\n", total.StringFixed(2))
	fmt.Fprintf(&sb, "Collected:   %s\n", paid.StringFixed(2))
	fmt.Fprintf(&sb, "Outstanding: %s\n", balance.StringFixed(2))

	writeBuckets := func(title string, m map[string]*bucket) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		fmt.Fprintf(&sb, "\n%s\n", title)

		for _, k := range keys {
			fmt.Fprintf(&sb, "  %-14s %4d  %s\n", k, m[k].count, m[k].total.StringFixed(2))
		}
	}

	writeBuckets("By status (billed)", byStatus)
	writeBuckets("By method (collected)", byMethod)

	sb.WriteString("\nInvoices\n")

	for _, inv := range r.Invoices {
		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %s\n",
			inv.Date.Format(time.DateOnly), inv.Ref, inv.OwnerName, inv.Total.StringFixed(2), inv.Status)
	}

	return sb.String()
}

// WriteZip streams an archive holding the invoices CSV, the items CSV and the summary.
func (s *Service) WriteZip(w io.Writer, r *Report) error {
	zw := zip.NewWriter(w)

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{InvoicesFile, func(w io.Writer) error { return s.WriteInvoicesCSV(w, r) }},
		{ItemsFile, func(w io.Writer) error { return s.WriteItemsCSV(w, r) }},
		{SummaryFile, func(w io.Writer) error {
			_, err := io.WriteString(w, s.Summary(r))
			return err
		}},
	}

	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return fmt.Errorf("adding %s: %w", f.name, err)
		}

		if err := f.write(fw); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}

	return zw.Close()
}

// FileName suggests a download name such as "invoices_20241101-20241130.zip".
func (r *Report) FileName() string {
	format := func(t *time.Time, fallback string) string {
		if t == nil {
			return fallback
		}

		return t.Format("20060102")
	}

	return fmt.Sprintf("invoices_%s-%s.zip", format(r.From, "start"), format(r.To, "now"))
}

func periodLabel(from, to *time.Time) string {
	switch {
	case from != nil && to != nil:
		return from.Format(time.DateOnly) + " to " + to.Format(time.DateOnly)
	case from != nil:
		return "from " + from.Format(time.DateOnly)
	case to != nil:
		return "up to " + to.Format(time.DateOnly)
	default:
		return "(all dates)"
	}
}
