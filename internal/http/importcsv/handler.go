package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/vetclinic/internal/http/respond"
	"github.com/MrJamesThe3rd/vetclinic/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type rowErrorResponse struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type importResponse struct {
	Kind     importer.Kind      `json:"kind"`
	Charset  string             `json:"charset"`
	Rows     int                `json:"rows"`
	Inserted int                `json:"inserted"`
	Skipped  int                `json:"skipped"`
	Rejected []rowErrorResponse `json:"rejected"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Fail(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	kind, ok := importer.ParseKind(r.FormValue("kind"))
	if !ok {
		respond.Fail(w, http.StatusBadRequest, "kind must be one of patients, invoices")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	res, err := h.importSvc.Import(r.Context(), kind, file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := importResponse{
		Kind:     res.Kind,
		Charset:  res.Charset,
		Rows:     res.Rows,
		Inserted: res.Inserted,
		Skipped:  res.Skipped,
		Rejected: make([]rowErrorResponse, 0, len(res.Rejected)),
	}

	for _, re := range res.Rejected {
		resp.Rejected = append(resp.Rejected, rowErrorResponse{Row: re.Row, Message: re.Message})
	}

	respond.Created(w, resp)
}
