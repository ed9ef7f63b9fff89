package export

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vetclinic/internal/apperr"
	"github.com/MrJamesThe3rd/vetclinic/internal/export"
	"github.com/MrJamesThe3rd/vetclinic/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.download)
}

type exportRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	from, err := respond.ParseDate("from", req.From)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	to, err := respond.ParseDate("to", req.To)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if from != nil && to != nil && to.Before(*from) {
		respond.Error(w, r, apperr.Validation("from must not be after to"))
		return
	}

	report, err := h.svc.Export(r.Context(), from, to)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName()))

	if err := h.svc.WriteZip(w, report); err != nil {
		slog.ErrorContext(r.Context(), "failed to write export archive", "error", err)
	}
}
