package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/vetclinic/internal/http/checkin"
	"github.com/MrJamesThe3rd/vetclinic/internal/http/export"
	"github.com/MrJamesThe3rd/vetclinic/internal/http/importcsv"
	"github.com/MrJamesThe3rd/vetclinic/internal/http/invoice"
	"github.com/MrJamesThe3rd/vetclinic/internal/http/matching"
	"github.com/MrJamesThe3rd/vetclinic/internal/http/patient"
	"github.com/MrJamesThe3rd/vetclinic/internal/http/respond"
	"github.com/MrJamesThe3rd/vetclinic/internal/http/stats"
)

type Handlers struct {
	Patients *patient.Handler
	CheckIns *checkin.Handler
	Invoices *invoice.Handler
	Stats    *stats.Handler
	Import   *importcsv.Handler
	Methods  *matching.Handler
	Export   *export.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Fail(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(RequireJSON)

			r.Route("/patients", h.Patients.Routes)
			r.Route("/checkins", h.CheckIns.Routes)
			r.Route("/invoices", h.Invoices.Routes)
			r.Route("/methods", h.Methods.Routes)
			r.Route("/export", h.Export.Routes)
		})

		r.Route("/stats", h.Stats.Routes)
		r.Route("/import", h.Import.Routes)
	})

	return router
}
