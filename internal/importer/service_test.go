package importer_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/encoding"
	"github.com/MrJamesThe3rd/vetclinic/internal/export"
	"github.com/MrJamesThe3rd/vetclinic/internal/importer"
	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

type mocks struct {
	patients *importer.MockPatientImporter
	invoices *importer.MockInvoiceImporter
	methods  *importer.MockMethodNormalizer
}

func newService(t *testing.T) (*importer.Service, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		patients: importer.NewMockPatientImporter(ctrl),
		invoices: importer.NewMockInvoiceImporter(ctrl),
		methods:  importer.NewMockMethodNormalizer(ctrl),
	}

	return importer.NewService(m.patients, m.invoices, m.methods), m
}

func TestService_ImportPatients(t *testing.T) {
	csv := strings.Join([]string{
		"patient_id,name,species,breed,age_dob,sex,color,owner_name,mobile_no,email_id,address,timestamp",
		"7,Bruno,Canine,Labrador,3y,Male,Golden,Asha Rao,98765 43210,asha@example.com,Pune,2023-05-01 10:00:00",
		"12,Kitty,0,NULL,,Female,,,,,,",
		"abc,Ghost,Feline,,,,,,,,,",
		",,,,,,,,,,,",
	}, "\n")

	svc, m := newService(t)

	m.patients.EXPECT().
		Import(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, patients []*patient.Patient) (int, error) {
			require.Len(t, patients, 2)

			bruno := patients[0]
			assert.Equal(t, "PaCPC-00007", bruno.ID)
			assert.Equal(t, "Asha Rao", bruno.OwnerName)
			assert.Equal(t, "Golden", bruno.Colour)
			assert.Equal(t, "Male", bruno.Gender)
			assert.Equal(t, time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC), bruno.CreatedAt)

			kitty := patients[1]
			assert.Equal(t, "PaCPC-00012", kitty.ID)
			assert.Equal(t, "Other", kitty.Type)
			assert.Empty(t, kitty.Breed)
			assert.Equal(t, "Unknown", kitty.OwnerName)

			return 1, nil
		})

	res, err := svc.Import(context.Background(), importer.KindPatients, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, encoding.UTF8, res.Charset)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 4, res.Rejected[0].Row)
}

func TestService_ImportInvoices(t *testing.T) {
	csv := strings.Join([]string{
		"ref;date;patient_id;patient_name;owner_name;mobile_no;payment_type;total;final_discount;status",
		"IN:01-2301-0041;2023-01-15;7;Bruno;Asha Rao;9876543210;GooglePay;900;100;Paid",
		"IN:01-2301-0042;15-01-2023;;Stray;;;Cash;250;;Outstanding",
		"IN:01-2301-0043;2023-01-16;;;;;;1,200.50;;",
		";2023-01-16;;;;;;10;;Paid",
	}, "\n")

	svc, m := newService(t)

	m.methods.EXPECT().Normalize(gomock.Any(), "GooglePay").Return("UPI", nil)
	m.methods.EXPECT().Normalize(gomock.Any(), "Cash").Return("Cash", nil)

	m.invoices.EXPECT().
		Import(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, invoices []*invoice.Invoice) (int, error) {
			require.Len(t, invoices, 3)

			paid := invoices[0]
			assert.Equal(t, "IN:01-2301-0041", paid.Ref)
			assert.Equal(t, "PaCPC-00007", paid.PatientID)
			assert.Equal(t, "UPI", paid.Method)
			assert.Equal(t, invoice.StatusPaid, paid.Status)
			assert.Equal(t, "1000", paid.Subtotal.String())
			assert.Equal(t, "100", paid.Discount.String())
			assert.Equal(t, "900", paid.Total.String())
			assert.Equal(t, "900", paid.Paid.String())
			assert.True(t, paid.Balance.IsZero())
			require.Len(t, paid.Items, 1)
			assert.Equal(t, importer.DefaultItemName, paid.Items[0].Name)
			assert.True(t, decimal.NewFromInt(1000).Equal(paid.Items[0].UnitPrice))
			assert.Equal(t, "900", paid.Items[0].Total.String())

			outstanding := invoices[1]
			assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), outstanding.Date)
			assert.Equal(t, "Unknown", outstanding.OwnerName)
			assert.Empty(t, outstanding.PatientID)
			assert.True(t, outstanding.Paid.IsZero())
			assert.Equal(t, "250", outstanding.Balance.String())

			draft := invoices[2]
			assert.Equal(t, invoice.StatusDraft, draft.Status)
			assert.Equal(t, "1200.5", draft.Total.String())
			assert.Empty(t, draft.Method)

			return 3, nil
		})

	res, err := svc.Import(context.Background(), importer.KindInvoices, strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Inserted)
	assert.Zero(t, res.Skipped)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "row 5: missing ref", res.Rejected[0].Error())
}

func TestService_ImportExportedInvoices(t *testing.T) {
	dec := decimal.RequireFromString

	report := &export.Report{Invoices: []*invoice.Invoice{
		{
			Ref:         "IN:01-2411-0005",
			PatientID:   "PaCPC-00007",
			PatientName: "Bruno",
			PatientType: "Canine",
			OwnerName:   "Asha Rao",
			Phone:       "+919876543210",
			Date:        time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
			Subtotal:    dec("250"),
			Discount:    dec("10"),
			Total:       dec("240"),
			Paid:        dec("100"),
			Balance:     dec("140"),
			Method:      "UPI",
			Status:      invoice.StatusOutstanding,
			Notes:       "second instalment due",
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, export.NewService(nil).WriteInvoicesCSV(&buf, report))

	svc, m := newService(t)

	m.methods.EXPECT().Normalize(gomock.Any(), "UPI").Return("UPI", nil)
	m.invoices.EXPECT().
		Import(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, invoices []*invoice.Invoice) (int, error) {
			require.Len(t, invoices, 1)

			got := invoices[0]
			assert.Equal(t, "IN:01-2411-0005", got.Ref)
			assert.Equal(t, "PaCPC-00007", got.PatientID)
			assert.Equal(t, invoice.StatusOutstanding, got.Status)
			assert.Equal(t, "second instalment due", got.Notes)
			assert.True(t, dec("250").Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, dec("10").Equal(got.Discount), "discount %s", got.Discount)
			assert.True(t, dec("240").Equal(got.Total), "total %s", got.Total)
			assert.True(t, dec("100").Equal(got.Paid), "paid %s", got.Paid)
			assert.True(t, dec("140").Equal(got.Balance), "balance %s", got.Balance)

			return 1, nil
		})

	res, err := svc.Import(context.Background(), importer.KindInvoices, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Empty(t, res.Rejected)
}

func TestService_ImportHeaderNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Import(context.Background(), importer.KindInvoices, strings.NewReader("foo,bar\n1,2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ref, date, total")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestService_ImportUnknownKind(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Import(context.Background(), importer.Kind("visits"), strings.NewReader("a,b\n"))
	assert.EqualError(t, err, "kind must be one of patients, invoices")
}

func TestService_ImportStoreError(t *testing.T) {
	svc, m := newService(t)

	m.patients.EXPECT().Import(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

	_, err := svc.Import(context.Background(), importer.KindPatients, strings.NewReader("patient_id,name\n1,Rex\n"))
	assert.EqualError(t, err, "db down")
}

func TestParseKind(t *testing.T) {
	k, ok := importer.ParseKind(" Invoices ")
	assert.True(t, ok)
	assert.Equal(t, importer.KindInvoices, k)

	_, ok = importer.ParseKind("visits")
	assert.False(t, ok)
}
