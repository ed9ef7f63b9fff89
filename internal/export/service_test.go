package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
)

type stubLister struct {
	gotFilter invoice.ListFilter
	invoices  []*invoice.Invoice
	err       error
}

func (s *stubLister) List(_ context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	s.gotFilter = filter
	return s.invoices, s.err
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleInvoices() []*invoice.Invoice {
	return []*invoice.Invoice{
		{
			Ref:       "IN:01-2411-0001",
			Date:      time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
			PatientID: "PaCPC-10000",
			OwnerName: "Asha Rao",
			Subtotal:  d("250"),
			Discount:  d("10"),
			Total:     d("240"),
			Paid:      d("240"),
			Balance:   decimal.Zero,
			Method:    "UPI",
			Status:    invoice.StatusPaid,
			Items: []invoice.Item{
				{Name: "Consultation", Quantity: d("2"), UnitPrice: d("100"), Discount: d("10"), Total: d("190")},
				{Name: "Deworming", Quantity: d("1"), UnitPrice: d("50"), Discount: decimal.Zero, Total: d("50")},
			},
		},
		{
			Ref:       "IN:01-2411-0002",
			Date:      time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC),
			OwnerName: "Ravi, Kumar",
			Subtotal:  d("100"),
			Discount:  decimal.Zero,
			Total:     d("100"),
			Paid:      d("40"),
			Balance:   d("60"),
			Status:    invoice.StatusOutstanding,
			Items: []invoice.Item{
				{Name: "Vaccination", Quantity: d("1"), UnitPrice: d("100"), Discount: decimal.Zero, Total: d("100")},
			},
		},
	}
}

func TestService_Export(t *testing.T) {
	lister := &stubLister{invoices: sampleInvoices()}
	svc := NewService(lister)

	from := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)

	report, err := svc.Export(context.Background(), &from, &to)
	require.NoError(t, err)

	assert.Len(t, report.Invoices, 2)
	assert.Equal(t, invoice.SortDateAsc, lister.gotFilter.Sort)
	assert.Equal(t, &from, lister.gotFilter.From)
	assert.Equal(t, "invoices_20241101-20241130.zip", report.FileName())
}

func TestService_ExportError(t *testing.T) {
	svc := NewService(&stubLister{err: errors.New("db down")})

	_, err := svc.Export(context.Background(), nil, nil)
	assert.ErrorContains(t, err, "db down")
}

func TestService_WriteInvoicesCSV(t *testing.T) {
	svc := NewService(&stubLister{})

	var buf bytes.Buffer
	require.NoError(t, svc.WriteInvoicesCSV(&buf, &Report{Invoices: sampleInvoices()}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, invoiceHeader, rows[0])
	assert.Equal(t, "IN:01-2411-0001", rows[1][0])
	assert.Equal(t, "2024-11-03", rows[1][1])
	assert.Equal(t, "240.00", rows[1][10])
	assert.Equal(t, "Ravi, Kumar", rows[2][5])
}

func TestService_Summary(t *testing.T) {
	svc := NewService(&stubLister{})

	summary := svc.Summary(&Report{Invoices: sampleInvoices()})

	assert.Contains(t, summary, "Invoices (all dates)")
	assert.Contains(t, summary, "Count:       2")
	assert.Contains(t, summary, "Billed:      340.00")
	assert.Contains(t, summary, "Collected:   280.00")
	assert.Contains(t, summary, "Outstanding: 60.00")
	assert.Contains(t, summary, "Unspecified")
	assert.Contains(t, summary, "* 2024-11-05 | IN:01-2411-0002 | Ravi, Kumar | 100.00 | Outstanding")
}

func TestService_WriteZip(t *testing.T) {
	svc := NewService(&stubLister{})

	var buf bytes.Buffer
	require.NoError(t, svc.WriteZip(&buf, &Report{Invoices: sampleInvoices()}))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{InvoicesFile, ItemsFile, SummaryFile}, names)

	f, err := zr.File[1].Open()
	require.NoError(t, err)
	defer f.Close()

	items, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(items), "IN:01-2411-0001,Consultation,2,100.00,10.00,190.00")
}
