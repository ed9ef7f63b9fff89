package invoice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// invoiceJSON mirrors invoiceResponse with plain numbers for assertions.
type invoiceJSON struct {
	Ref         string  `json:"ref"`
	PatientID   *string `json:"patient_id"`
	PatientName string  `json:"patient_name"`
	OwnerName   string  `json:"owner_name"`
	Date        string  `json:"date"`
	Subtotal    float64 `json:"subtotal"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
	PaidAmount  float64 `json:"paid_amount"`
	Balance     float64 `json:"balance"`
	Status      string  `json:"status"`
	Method      string  `json:"method"`
	Items       []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Total    float64 `json:"total"`
	} `json:"items"`
}

type fixture struct {
	router   http.Handler
	repo     *invoice.MockRepository
	patients *invoice.MockPatientLookup
}

var issued = time.Date(2024, 11, 3, 9, 30, 0, 0, time.UTC)

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		repo:     invoice.NewMockRepository(ctrl),
		patients: invoice.NewMockPatientLookup(ctrl),
	}

	svc := invoice.NewService(f.repo, f.patients, invoice.NewMockSequencer(ctrl)).
		WithClock(func() time.Time { return issued })

	router := chi.NewRouter()
	router.Route("/api/invoices", NewHandler(svc).Routes)
	f.router = router

	return f
}

func (f fixture) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec.Code, env
}

func decodeInvoice(t *testing.T, env envelope) invoiceJSON {
	t.Helper()

	var got invoiceJSON
	require.NoError(t, json.Unmarshal(env.Data, &got))

	return got
}

func TestHandler_Create(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice, ref invoice.RefFunc) error {
			inv.Ref = ref(5)
			return nil
		})

	code, env := f.do(t, http.MethodPost, "/api/invoices", `{
		"owner_name": "Asha Rao",
		"patient_name": "Bruno",
		"date": "2024-11-03",
		"method": "Cash",
		"paid_amount": 240,
		"items": [
			{"name": "Consultation", "quantity": "2", "unit_price": 100, "discount": "10"},
			{"name": "Deworming", "quantity": 1, "unit_price": "50", "discount": ""}
		]
	}`)

	require.Equal(t, http.StatusCreated, code, env.Error)

	got := decodeInvoice(t, env)
	assert.Equal(t, "IN:01-2411-0005", got.Ref)
	assert.InDelta(t, 250, got.Subtotal, 0.001)
	assert.InDelta(t, 10, got.Discount, 0.001)
	assert.InDelta(t, 240, got.Total, 0.001)
	assert.InDelta(t, 240, got.PaidAmount, 0.001)
	assert.InDelta(t, 0, got.Balance, 0.001)
	assert.Equal(t, "Paid", got.Status)
	assert.Nil(t, got.PatientID)
	require.Len(t, got.Items, 2)
	assert.InDelta(t, 190, got.Items[0].Total, 0.001)
}

func TestHandler_Create_LenientNumbers(t *testing.T) {
	f := setup(t)

	var stored *invoice.Invoice

	f.repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice, ref invoice.RefFunc) error {
			inv.Ref = ref(1)
			stored = inv

			return nil
		})

	code, _ := f.do(t, http.MethodPost, "/api/invoices", `{
		"owner_name": "Asha Rao",
		"date": "2024-11-03",
		"items": [{"name": "Surgery", "quantity": "two", "unit_price": "1,250.50", "discount": null}]
	}`)

	require.Equal(t, http.StatusCreated, code)
	require.NotNil(t, stored)
	assert.True(t, stored.Items[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("1250.50")))
	assert.Equal(t, invoice.StatusDraft, stored.Status)
	assert.True(t, stored.Balance.Equal(stored.Total))
}

func TestHandler_Create_SnapshotsPatient(t *testing.T) {
	f := setup(t)

	f.patients.EXPECT().Get(gomock.Any(), "PaCPC-10000").Return(&patient.Patient{
		ID: "PaCPC-10000", Name: "Bruno", OwnerName: "Asha Rao", Type: "Canine", Phone: "+919876543210",
	}, nil)
	f.repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice, ref invoice.RefFunc) error {
			inv.Ref = ref(2)
			return nil
		})

	code, env := f.do(t, http.MethodPost, "/api/invoices",
		`{"patient_id":"PaCPC-10000","date":"2024-11-03","items":[{"name":"Vaccine","quantity":1,"unit_price":500}]}`)

	require.Equal(t, http.StatusCreated, code, env.Error)

	got := decodeInvoice(t, env)
	require.NotNil(t, got.PatientID)
	assert.Equal(t, "PaCPC-10000", *got.PatientID)
	assert.Equal(t, "Asha Rao", got.OwnerName)
	assert.Equal(t, "Bruno", got.PatientName)
}

func TestHandler_Create_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "no items",
			body: `{"owner_name":"Asha","date":"2024-11-03","items":[]}`,
			want: "at least one item is required",
		},
		{
			name: "missing date",
			body: `{"owner_name":"Asha","items":[{"name":"x"}]}`,
			want: "date is required",
		},
		{
			name: "blank owner",
			body: `{"owner_name":"  ","date":"2024-11-03","items":[{"name":"x"}]}`,
			want: "owner_name is required",
		},
		{
			name: "bad status",
			body: `{"owner_name":"Asha","date":"2024-11-03","status":"Void","items":[{"name":"x"}]}`,
			want: "status must be one of Draft, Paid, Outstanding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			code, env := f.do(t, http.MethodPost, "/api/invoices", tt.body)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.want, env.Error)
		})
	}
}

func TestHandler_List(t *testing.T) {
	f := setup(t)

	from := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC)

	f.repo.EXPECT().ListInvoices(gomock.Any(), invoice.ListFilter{
		Status: invoice.StatusOutstanding,
		From:   &from,
		To:     &to,
		Query:  "asha",
		Sort:   invoice.SortBalanceDesc,
	}).Return([]*invoice.Invoice{{Ref: "IN:01-2411-0001", Status: invoice.StatusOutstanding}}, nil)

	code, env := f.do(t, http.MethodGet,
		"/api/invoices?status=outstanding&from=2024-11-01&to=2024-11-30&q=asha&sort=balance_desc", "")

	require.Equal(t, http.StatusOK, code, env.Error)

	var got []invoiceJSON
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "IN:01-2411-0001", got[0].Ref)
}

func TestHandler_List_Rejects(t *testing.T) {
	for _, q := range []string{"sort=newest", "status=void", "from=yesterday", "from=2024-12-01&to=2024-11-01"} {
		t.Run(q, func(t *testing.T) {
			f := setup(t)

			code, env := f.do(t, http.MethodGet, "/api/invoices?"+q, "")

			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Success)
		})
	}
}

func TestHandler_Get(t *testing.T) {
	for _, path := range []string{"/api/invoices/IN:01-2411-0005", "/api/invoices/IN%3A01-2411-0005"} {
		t.Run(path, func(t *testing.T) {
			f := setup(t)

			f.repo.EXPECT().GetInvoice(gomock.Any(), "IN:01-2411-0005").
				Return(&invoice.Invoice{Ref: "IN:01-2411-0005", Items: []invoice.Item{{Name: "Consultation"}}}, nil)

			code, env := f.do(t, http.MethodGet, path, "")

			require.Equal(t, http.StatusOK, code)

			got := decodeInvoice(t, env)
			assert.Equal(t, "IN:01-2411-0005", got.Ref)
			assert.Len(t, got.Items, 1)
		})
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().GetInvoice(gomock.Any(), "IN:01-2411-9999").Return(nil, invoice.ErrNotFound)

	code, env := f.do(t, http.MethodGet, "/api/invoices/IN:01-2411-9999", "")

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "invoice not found", env.Error)
}

func TestHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPaid    float64
		wantBalance float64
	}{
		{name: "paid settles", body: `{"status":"Paid"}`, wantPaid: 240, wantBalance: 0},
		{name: "draft clears", body: `{"status":"draft"}`, wantPaid: 0, wantBalance: 240},
		{name: "partial payment", body: `{"status":"Outstanding","paid_amount":"100"}`, wantPaid: 100, wantBalance: 140},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			f.repo.EXPECT().GetInvoice(gomock.Any(), "IN:01-2411-0005").Return(&invoice.Invoice{
				Ref:     "IN:01-2411-0005",
				Total:   decimal.NewFromInt(240),
				Paid:    decimal.NewFromInt(40),
				Balance: decimal.NewFromInt(200),
				Status:  invoice.StatusOutstanding,
			}, nil)
			f.repo.EXPECT().UpdatePayment(gomock.Any(), gomock.Any()).Return(nil)

			code, env := f.do(t, http.MethodPatch, "/api/invoices/IN:01-2411-0005/status", tt.body)

			require.Equal(t, http.StatusOK, code, env.Error)

			got := decodeInvoice(t, env)
			assert.InDelta(t, tt.wantPaid, got.PaidAmount, 0.001)
			assert.InDelta(t, tt.wantBalance, got.Balance, 0.001)
			assert.InDelta(t, 240, got.Total, 0.001)
		})
	}
}

func TestHandler_Delete(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().DeleteInvoice(gomock.Any(), "IN:01-2411-0005").Return(nil)

	code, env := f.do(t, http.MethodDelete, "/api/invoices/IN:01-2411-0005", "")

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}
