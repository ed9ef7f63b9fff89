package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vetclinic/internal/http/respond"
	"github.com/MrJamesThe3rd/vetclinic/internal/stats"
)

type Handler struct {
	svc *stats.Service
}

func NewHandler(svc *stats.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.dashboard)
}

type statusResponse struct {
	Status  string        `json:"status"`
	Count   int64         `json:"count"`
	Total   respond.Money `json:"total"`
	Paid    respond.Money `json:"paid"`
	Balance respond.Money `json:"balance"`
}

type dashboardResponse struct {
	Patients      int64            `json:"patients"`
	OpenCheckIns  int64            `json:"open_checkins"`
	DoneCheckIns  int64            `json:"done_checkins"`
	TodayCheckIns int64            `json:"today_checkins"`
	Invoices      int64            `json:"invoices"`
	Revenue       respond.Money    `json:"revenue"`
	Outstanding   respond.Money    `json:"outstanding"`
	ByStatus      []statusResponse `json:"by_status"`
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := dashboardResponse{
		Patients:      d.Patients,
		OpenCheckIns:  d.OpenCheckIns,
		DoneCheckIns:  d.DoneCheckIns,
		TodayCheckIns: d.TodayCheckIns,
		Invoices:      d.Invoices,
		Revenue:       respond.Money(d.Revenue),
		Outstanding:   respond.Money(d.Outstanding),
		ByStatus:      make([]statusResponse, 0, len(d.ByStatus)),
	}

	for _, st := range d.ByStatus {
		resp.ByStatus = append(resp.ByStatus, statusResponse{
			Status:  st.Status,
			Count:   st.Count,
			Total:   respond.Money(st.Total),
			Paid:    respond.Money(st.Paid),
			Balance: respond.Money(st.Balance),
		})
	}

	respond.OK(w, resp)
}
