package matching

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vetclinic/internal/http/respond"
	"github.com/MrJamesThe3rd/vetclinic/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type mappingResponse struct {
	RawPattern string `json:"raw_pattern"`
	Method     string `json:"method"`
}

type suggestResponse struct {
	Raw     string `json:"raw"`
	Method  string `json:"method"`
	Matched bool   `json:"matched"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("raw")
	if raw == "" {
		respond.Fail(w, http.StatusBadRequest, "raw query parameter is required")
		return
	}

	method, err := h.svc.Suggest(r.Context(), raw)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := suggestResponse{Raw: raw, Method: method, Matched: method != ""}
	if !resp.Matched {
		resp.Method = raw
	}

	respond.OK(w, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]mappingResponse, len(mappings))
	for i, m := range mappings {
		resp[i] = mappingResponse(m)
	}

	respond.OK(w, resp)
}

type learnRequest struct {
	RawPattern string `json:"raw_pattern"`
	Method     string `json:"method"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.svc.Learn(r.Context(), req.RawPattern, req.Method); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Created(w, mappingResponse(req))
}
