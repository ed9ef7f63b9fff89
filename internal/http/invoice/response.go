package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/vetclinic/internal/http/respond"
	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
)

type quantity decimal.Decimal

func (q quantity) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(q).String()), nil
}

type itemResponse struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Quantity  quantity      `json:"quantity"`
	UnitPrice respond.Money `json:"unit_price"`
	Discount  respond.Money `json:"discount"`
	Total     respond.Money `json:"total"`
}

type invoiceResponse struct {
	Ref         string         `json:"ref"`
	PatientID   *string        `json:"patient_id"`
	PatientName string         `json:"patient_name"`
	PatientType string         `json:"patient_type"`
	OwnerName   string         `json:"owner_name"`
	Phone       string         `json:"phone"`
	Date        string         `json:"date"`
	Subtotal    respond.Money  `json:"subtotal"`
	Discount    respond.Money  `json:"discount"`
	Total       respond.Money  `json:"total"`
	PaidAmount  respond.Money  `json:"paid_amount"`
	Balance     respond.Money  `json:"balance"`
	Method      string         `json:"method"`
	Status      invoice.Status `json:"status"`
	Notes       string         `json:"notes"`
	Items       []itemResponse `json:"items"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	resp := invoiceResponse{
		Ref:         inv.Ref,
		PatientName: inv.PatientName,
		PatientType: inv.PatientType,
		OwnerName:   inv.OwnerName,
		Phone:       inv.Phone,
		Date:        inv.Date.Format(time.DateOnly),
		Subtotal:    respond.Money(inv.Subtotal),
		Discount:    respond.Money(inv.Discount),
		Total:       respond.Money(inv.Total),
		PaidAmount:  respond.Money(inv.Paid),
		Balance:     respond.Money(inv.Balance),
		Method:      inv.Method,
		Status:      inv.Status,
		Notes:       inv.Notes,
		Items:       make([]itemResponse, len(inv.Items)),
		CreatedAt:   inv.CreatedAt,
	}

	if inv.PatientID != "" {
		resp.PatientID = new(inv.PatientID)
	}

	for i, it := range inv.Items {
		resp.Items[i] = itemResponse{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  quantity(it.Quantity),
			UnitPrice: respond.Money(it.UnitPrice),
			Discount:  respond.Money(it.Discount),
			Total:     respond.Money(it.Total),
		}
	}

	return resp
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}
