package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/counter"
	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

var (
	issued   = time.Date(2024, 11, 3, 15, 4, 0, 0, time.UTC)
	billDate = time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)
)

func sampleItems() []invoice.LineInput {
	return []invoice.LineInput{
		{Name: "Consultation", Quantity: dec("2"), UnitPrice: dec("100"), Discount: dec("10")},
		{Name: "Deworming", Quantity: dec("1"), UnitPrice: dec("50"), Discount: decimal.Zero},
	}
}

// fakeCreate simulates the store assigning the ref from counter value n.
func fakeCreate(n int64) func(context.Context, *invoice.Invoice, invoice.RefFunc) error {
	return func(_ context.Context, inv *invoice.Invoice, ref invoice.RefFunc) error {
		inv.Ref = ref(n)
		return nil
	}
}

func TestFormatRef(t *testing.T) {
	assert.Equal(t, "IN:01-2411-0005", invoice.FormatRef(issued, 5))
	assert.Equal(t, "IN:01-2501-12345", invoice.FormatRef(time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), 12345))

	n, ok := invoice.ParseRefNumber("IN:01-2411-0005")
	assert.True(t, ok)
	assert.Equal(t, int64(5), n)

	_, ok = invoice.ParseRefNumber("INV-77")
	assert.False(t, ok)
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    invoice.CreateParams
		setupMock func(repo *invoice.MockRepository, patients *invoice.MockPatientLookup)
		check     func(t *testing.T, inv *invoice.Invoice)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "RefAndTotals",
			params: invoice.CreateParams{
				OwnerName: "Asha Rao",
				Date:      billDate,
				Paid:      dec("240"),
				Items:     sampleItems(),
			},
			setupMock: func(repo *invoice.MockRepository, _ *invoice.MockPatientLookup) {
				repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeCreate(5))
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				assert.Equal(t, "IN:01-2411-0005", inv.Ref)
				assertDec(t, "250", inv.Subtotal)
				assertDec(t, "10", inv.Discount)
				assertDec(t, "240", inv.Total)
				assertDec(t, "240", inv.Paid)
				assertDec(t, "0", inv.Balance)
				assert.Equal(t, invoice.StatusPaid, inv.Status)
				assert.Len(t, inv.Items, 2)
			},
		},
		{
			name: "UnpaidDefaultsToDraft",
			params: invoice.CreateParams{
				OwnerName: "Asha Rao",
				Date:      billDate,
				Items:     sampleItems(),
			},
			setupMock: func(repo *invoice.MockRepository, _ *invoice.MockPatientLookup) {
				repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeCreate(1))
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				assert.Equal(t, invoice.StatusDraft, inv.Status)
				assertDec(t, "0", inv.Paid)
				assertDec(t, "240", inv.Balance)
			},
		},
		{
			name: "PartialPaymentIsOutstanding",
			params: invoice.CreateParams{
				OwnerName: "Asha Rao",
				Date:      billDate,
				Paid:      dec("100"),
				Items:     sampleItems(),
			},
			setupMock: func(repo *invoice.MockRepository, _ *invoice.MockPatientLookup) {
				repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeCreate(2))
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				assert.Equal(t, invoice.StatusOutstanding, inv.Status)
				assertDec(t, "140", inv.Balance)
			},
		},
		{
			name: "ExplicitDraftClearsPayment",
			params: invoice.CreateParams{
				OwnerName: "Asha Rao",
				Date:      billDate,
				Status:    "draft",
				Paid:      dec("100"),
				Items:     sampleItems(),
			},
			setupMock: func(repo *invoice.MockRepository, _ *invoice.MockPatientLookup) {
				repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeCreate(3))
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				assertDec(t, "0", inv.Paid)
				assertDec(t, "240", inv.Balance)
			},
		},
		{
			name: "PatientSnapshot",
			params: invoice.CreateParams{
				PatientID: "PaCPC-10000",
				Date:      billDate,
				Items:     sampleItems(),
			},
			setupMock: func(repo *invoice.MockRepository, patients *invoice.MockPatientLookup) {
				patients.EXPECT().Get(gomock.Any(), "PaCPC-10000").Return(&patient.Patient{
					ID: "PaCPC-10000", Name: "Bruno", OwnerName: "Asha Rao", Type: "Canine", Phone: "+919876543210",
				}, nil)
				repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeCreate(4))
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				assert.Equal(t, "PaCPC-10000", inv.PatientID)
				assert.Equal(t, "Bruno", inv.PatientName)
				assert.Equal(t, "Canine", inv.PatientType)
				assert.Equal(t, "Asha Rao", inv.OwnerName)
				assert.Equal(t, "+919876543210", inv.Phone)
			},
		},
		{
			name: "UnknownPatientKeepsSubmittedOwner",
			params: invoice.CreateParams{
				PatientID: "PaCPC-99999",
				OwnerName: "Walk-in",
				Date:      billDate,
				Items:     sampleItems(),
			},
			setupMock: func(repo *invoice.MockRepository, patients *invoice.MockPatientLookup) {
				patients.EXPECT().Get(gomock.Any(), "PaCPC-99999").Return(nil, patient.ErrNotFound)
				repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeCreate(6))
			},
			check: func(t *testing.T, inv *invoice.Invoice) {
				assert.Empty(t, inv.PatientID)
				assert.Equal(t, "Walk-in", inv.OwnerName)
			},
		},
		{
			name:    "MissingOwner",
			params:  invoice.CreateParams{Date: billDate, Items: sampleItems()},
			wantErr: true,
		},
		{
			name:    "MissingDate",
			params:  invoice.CreateParams{OwnerName: "Asha Rao", Items: sampleItems()},
			wantErr: true,
		},
		{
			name:    "NoItems",
			params:  invoice.CreateParams{OwnerName: "Asha Rao", Date: billDate},
			wantErr: true,
		},
		{
			name: "BlankItemName",
			params: invoice.CreateParams{
				OwnerName: "Asha Rao",
				Date:      billDate,
				Items:     []invoice.LineInput{{Name: " ", Quantity: dec("1")}},
			},
			wantErr: true,
		},
		{
			name: "BadStatus",
			params: invoice.CreateParams{
				OwnerName: "Asha Rao",
				Date:      billDate,
				Status:    "Refunded",
				Items:     sampleItems(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := invoice.NewMockRepository(ctrl)
			patients := invoice.NewMockPatientLookup(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, patients)
			}

			svc := invoice.NewService(repo, patients, invoice.NewMockSequencer(ctrl)).
				WithClock(func() time.Time { return issued })

			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestService_CreateRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("tx aborted"))

	svc := invoice.NewService(repo, invoice.NewMockPatientLookup(ctrl), invoice.NewMockSequencer(ctrl))

	_, err := svc.Create(context.Background(), invoice.CreateParams{
		OwnerName: "Asha Rao", Date: billDate, Items: sampleItems(),
	})
	assert.EqualError(t, err, "tx aborted")
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestService_SetStatus(t *testing.T) {
	stored := func() *invoice.Invoice {
		return &invoice.Invoice{
			Ref:     "IN:01-2411-0005",
			Total:   dec("240"),
			Paid:    dec("40"),
			Balance: dec("200"),
			Status:  invoice.StatusOutstanding,
		}
	}

	tests := []struct {
		name        string
		params      invoice.PaymentParams
		wantPaid    string
		wantBalance string
	}{
		{name: "Paid", params: invoice.PaymentParams{Status: "Paid"}, wantPaid: "240", wantBalance: "0"},
		{name: "Draft", params: invoice.PaymentParams{Status: "Draft"}, wantPaid: "0", wantBalance: "240"},
		{name: "OutstandingKeepsStoredPayment", params: invoice.PaymentParams{Status: "Outstanding"}, wantPaid: "40", wantBalance: "200"},
		{name: "OutstandingWithNewPayment", params: invoice.PaymentParams{Status: "Outstanding", Paid: new(dec("90"))}, wantPaid: "90", wantBalance: "150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := invoice.NewMockRepository(ctrl)
			repo.EXPECT().GetInvoice(gomock.Any(), "IN:01-2411-0005").Return(stored(), nil)
			repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).Return(nil)

			svc := invoice.NewService(repo, invoice.NewMockPatientLookup(ctrl), invoice.NewMockSequencer(ctrl))

			got, err := svc.SetStatus(context.Background(), "IN:01-2411-0005", tt.params)
			require.NoError(t, err)

			assertDec(t, "240", got.Total)
			assertDec(t, tt.wantPaid, got.Paid)
			assertDec(t, tt.wantBalance, got.Balance)
		})
	}
}

func TestService_SetStatusErrors(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().GetInvoice(gomock.Any(), "IN:01-0000-0000").Return(nil, invoice.ErrNotFound)

	svc := invoice.NewService(repo, invoice.NewMockPatientLookup(ctrl), invoice.NewMockSequencer(ctrl))

	_, err := svc.SetStatus(context.Background(), "IN:01-0000-0000", invoice.PaymentParams{Status: "Paid"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.SetStatus(context.Background(), "IN:01-2411-0005", invoice.PaymentParams{Status: "Void"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		ListInvoices(gomock.Any(), invoice.ListFilter{Status: invoice.StatusPaid, Sort: invoice.SortDateDesc}).
		Return([]*invoice.Invoice{{Ref: "a"}}, nil)

	svc := invoice.NewService(repo, invoice.NewMockPatientLookup(ctrl), invoice.NewMockSequencer(ctrl))

	got, err := svc.List(context.Background(), invoice.ListFilter{Status: invoice.StatusPaid})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	from := billDate
	to := billDate.AddDate(0, 0, -1)

	_, err = svc.List(context.Background(), invoice.ListFilter{From: &from, To: &to})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestParseSort(t *testing.T) {
	got, err := invoice.ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, invoice.SortDateDesc, got)

	got, err = invoice.ParseSort("TOTAL_ASC")
	require.NoError(t, err)
	assert.Equal(t, invoice.SortTotalAsc, got)

	_, err = invoice.ParseSort("owner")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestService_ImportSyncsCounter(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := invoice.NewMockRepository(ctrl)
	seq := invoice.NewMockSequencer(ctrl)

	invoices := []*invoice.Invoice{
		{Ref: "IN:01-2301-0041"},
		{Ref: "IN:01-2302-0107"},
		{Ref: "legacy-9"},
	}

	repo.EXPECT().ImportInvoices(gomock.Any(), invoices).Return(3, nil)
	seq.EXPECT().Ensure(gomock.Any(), counter.KeyInvoice, int64(108)).Return(nil)

	svc := invoice.NewService(repo, invoice.NewMockPatientLookup(ctrl), seq)

	n, err := svc.Import(context.Background(), invoices)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
