package invoice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/http/respond"
	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{ref}", h.get)
	r.Patch("/{ref}/status", h.updateStatus)
	r.Delete("/{ref}", h.delete)
}

type itemRequest struct {
	Name      string        `json:"name"`
	Quantity  lenientNumber `json:"quantity"`
	UnitPrice lenientNumber `json:"unit_price"`
	Discount  lenientNumber `json:"discount"`
}

type createInvoiceRequest struct {
	PatientID   string        `json:"patient_id"`
	PatientName string        `json:"patient_name"`
	PatientType string        `json:"patient_type"`
	OwnerName   string        `json:"owner_name"`
	Phone       string        `json:"phone"`
	Date        string        `json:"date"`
	Method      string        `json:"method"`
	Status      string        `json:"status"`
	PaidAmount  lenientNumber `json:"paid_amount"`
	Notes       string        `json:"notes"`
	Items       []itemRequest `json:"items"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	date, err := respond.ParseDate("date", req.Date)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if date == nil {
		respond.Error(w, r, apperr.Validation("date is required"))
		return
	}

	items := make([]invoice.LineInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, invoice.LineInput{
			Name:      it.Name,
			Quantity:  invoice.ParseQuantity(string(it.Quantity)),
			UnitPrice: invoice.ParseMoney(string(it.UnitPrice)),
			Discount:  invoice.ParseMoney(string(it.Discount)),
		})
	}

	inv, err := h.svc.Create(r.Context(), invoice.CreateParams{
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		PatientType: req.PatientType,
		OwnerName:   req.OwnerName,
		Phone:       req.Phone,
		Date:        *date,
		Method:      req.Method,
		Status:      req.Status,
		Paid:        invoice.ParseMoney(string(req.PaidAmount)),
		Notes:       req.Notes,
		Items:       items,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Created(w, toResponse(inv))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := invoice.ListFilter{Query: query.Get("q")}

	var err error

	if s := query.Get("status"); s != "" {
		if filter.Status, err = invoice.ParseStatus(s); err != nil {
			respond.Error(w, r, err)
			return
		}
	}

	if filter.Sort, err = invoice.ParseSort(query.Get("sort")); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.From, err = respond.ParseDate("from", query.Get("from")); err != nil {
		respond.Error(w, r, err)
		return
	}

	if filter.To, err = respond.ParseDate("to", query.Get("to")); err != nil {
		respond.Error(w, r, err)
		return
	}

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, toResponseList(invoices))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Get(r.Context(), refParam(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, toResponse(inv))
}

type updateStatusRequest struct {
	Status     string         `json:"status"`
	PaidAmount *lenientNumber `json:"paid_amount,omitempty"`
	Method     *string        `json:"method,omitempty"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := invoice.PaymentParams{Status: req.Status, Method: req.Method}

	if req.PaidAmount != nil {
		params.Paid = new(invoice.ParseMoney(string(*req.PaidAmount)))
	}

	inv, err := h.svc.SetStatus(r.Context(), refParam(r), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, toResponse(inv))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ref := refParam(r)

	if err := h.svc.Delete(r.Context(), ref); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, map[string]string{"ref": ref})
}
