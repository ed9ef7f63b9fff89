package checkin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/checkin"
	"github.com/MrJamesThe3rd/vetclinic/internal/http/respond"
)

type Handler struct {
	svc *checkin.Service
}

func NewHandler(svc *checkin.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type createCheckInRequest struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	OwnerName   string `json:"owner_name"`
	Doctor      string `json:"doctor"`
	Date        string `json:"date"`
	Complaint   string `json:"complaint"`
	Subjective  string `json:"subjective"`
	Objective   string `json:"objective"`
	Assessment  string `json:"assessment"`
	Plan        string `json:"plan"`
	Procedures  string `json:"procedures"`
	Medications string `json:"medications"`
	Followup    string `json:"followup"`
	Status      string `json:"status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCheckInRequest
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

	c, err := h.svc.Create(r.Context(), checkin.CreateParams{
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		OwnerName:   req.OwnerName,
		Doctor:      req.Doctor,
		Date:        *date,
		Complaint:   req.Complaint,
		Subjective:  req.Subjective,
		Objective:   req.Objective,
		Assessment:  req.Assessment,
		Plan:        req.Plan,
		Procedures:  req.Procedures,
		Medications: req.Medications,
		Followup:    req.Followup,
		Status:      req.Status,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Created(w, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := checkin.ListFilter{
		Query:     query.Get("q"),
		PatientID: query.Get("patient_id"),
	}

	if s := query.Get("status"); s != "" {
		status, err := checkin.ParseStatus(s)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		filter.Status = status
	}

	checkIns, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, toResponseList(checkIns))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, toResponse(c))
}

type updateCheckInRequest struct {
	Doctor      *string `json:"doctor,omitempty"`
	Date        *string `json:"date,omitempty"`
	Complaint   *string `json:"complaint,omitempty"`
	Subjective  *string `json:"subjective,omitempty"`
	Objective   *string `json:"objective,omitempty"`
	Assessment  *string `json:"assessment,omitempty"`
	Plan        *string `json:"plan,omitempty"`
	Procedures  *string `json:"procedures,omitempty"`
	Medications *string `json:"medications,omitempty"`
	Followup    *string `json:"followup,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateCheckInRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := checkin.UpdateParams{
		Doctor:      req.Doctor,
		Complaint:   req.Complaint,
		Subjective:  req.Subjective,
		Objective:   req.Objective,
		Assessment:  req.Assessment,
		Plan:        req.Plan,
		Procedures:  req.Procedures,
		Medications: req.Medications,
		Followup:    req.Followup,
	}

	if req.Date != nil {
		date, err := respond.ParseDate("date", *req.Date)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		if date == nil {
			respond.Error(w, r, apperr.Validation("date is required"))
			return
		}

		params.Date = date
	}

	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, toResponse(c))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.svc.SetStatus(r.Context(), id, req.Status); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, map[string]string{"id": id})
}
