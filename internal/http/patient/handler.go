package patient

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vetclinic/internal/http/respond"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
)

type Handler struct {
	svc *patient.Service
}

func NewHandler(svc *patient.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createPatientRequest struct {
	Name      string `json:"name"`
	OwnerName string `json:"owner_name"`
	Type      string `json:"type"`
	Breed     string `json:"breed"`
	Colour    string `json:"colour"`
	Age       string `json:"age"`
	Gender    string `json:"gender"`
	Weight    string `json:"weight"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPatientRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.Create(r.Context(), patient.CreateParams(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Created(w, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	patients, err := h.svc.List(r.Context(), patient.ListFilter{
		Query: r.URL.Query().Get("q"),
		Type:  r.URL.Query().Get("type"),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, toResponseList(patients))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, toResponse(p))
}

// updatePatientRequest holds a partial update; absent fields stay nil.
type updatePatientRequest struct {
	Name      *string `json:"name,omitempty"`
	OwnerName *string `json:"owner_name,omitempty"`
	Type      *string `json:"type,omitempty"`
	Breed     *string `json:"breed,omitempty"`
	Colour    *string `json:"colour,omitempty"`
	Age       *string `json:"age,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Weight    *string `json:"weight,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Address   *string `json:"address,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updatePatientRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patient.UpdateParams(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, toResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, map[string]string{"id": id})
}
