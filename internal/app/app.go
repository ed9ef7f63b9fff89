// Package app wires the clinic services and the HTTP server shared by the
// command-line entry points.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/vetclinic/internal/checkin"
	checkinStore "github.com/MrJamesThe3rd/vetclinic/internal/checkin/store"
	"github.com/MrJamesThe3rd/vetclinic/internal/config"
	"github.com/MrJamesThe3rd/vetclinic/internal/counter"
	counterStore "github.com/MrJamesThe3rd/vetclinic/internal/counter/store"
	"github.com/MrJamesThe3rd/vetclinic/internal/database"
	"github.com/MrJamesThe3rd/vetclinic/internal/export"
	clinicHttp "github.com/MrJamesThe3rd/vetclinic/internal/http"
	checkinHandler "github.com/MrJamesThe3rd/vetclinic/internal/http/checkin"
	exportHandler "github.com/MrJamesThe3rd/vetclinic/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/vetclinic/internal/http/importcsv"
	invoiceHandler "github.com/MrJamesThe3rd/vetclinic/internal/http/invoice"
	matchingHandler "github.com/MrJamesThe3rd/vetclinic/internal/http/matching"
	patientHandler "github.com/MrJamesThe3rd/vetclinic/internal/http/patient"
	statsHandler "github.com/MrJamesThe3rd/vetclinic/internal/http/stats"
	"github.com/MrJamesThe3rd/vetclinic/internal/importer"
	"github.com/MrJamesThe3rd/vetclinic/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/vetclinic/internal/invoice/store"
	"github.com/MrJamesThe3rd/vetclinic/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/vetclinic/internal/matching/store"
	"github.com/MrJamesThe3rd/vetclinic/internal/patient"
	patientStore "github.com/MrJamesThe3rd/vetclinic/internal/patient/store"
	"github.com/MrJamesThe3rd/vetclinic/internal/stats"
	statsStore "github.com/MrJamesThe3rd/vetclinic/internal/stats/store"
)

const shutdownTimeout = 10 * time.Second

type Services struct {
	Counters *counter.Service
	Patients *patient.Service
	CheckIns *checkin.Service
	Invoices *invoice.Service
	Methods  *matching.Service
	Stats    *stats.Service
	Import   *importer.Service
	Export   *export.Service
}

func NewServices(db *sql.DB, cfg *config.Config) *Services {
	var (
		counterService  = counter.NewService(counterStore.New(db))
		patientService  = patient.NewService(patientStore.New(db), counterService, cfg.Clinic.PhoneRegion)
		checkinService  = checkin.NewService(checkinStore.New(db), patientService)
		invoiceService  = invoice.NewService(invoiceStore.New(db), patientService, counterService)
		matchingService = matching.NewService(matchingStore.New(db))
	)

	return &Services{
		Counters: counterService,
		Patients: patientService,
		CheckIns: checkinService,
		Invoices: invoiceService,
		Methods:  matchingService,
		Stats:    stats.NewService(statsStore.New(db)),
		Import:   importer.NewService(patientService, invoiceService, matchingService),
		Export:   export.NewService(invoiceService),
	}
}

// Handler builds the API router over svc.
func (svc *Services) Handler(cfg *config.Config) http.Handler {
	return clinicHttp.New(clinicHttp.Handlers{
		Patients: patientHandler.NewHandler(svc.Patients),
		CheckIns: checkinHandler.NewHandler(svc.CheckIns),
		Invoices: invoiceHandler.NewHandler(svc.Invoices),
		Stats:    statsHandler.NewHandler(svc.Stats),
		Import:   importHandler.NewHandler(svc.Import),
		Methods:  matchingHandler.NewHandler(svc.Methods),
		Export:   exportHandler.NewHandler(svc.Export),
	}, cfg.Server.CORSOrigins)
}

// Serve runs the API server until ctx is cancelled, then drains in-flight
// requests.
func Serve(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "clinic", cfg.App.Name)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Open connects to the configured database and, when enabled, applies
// pending migrations.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	if !cfg.DB.AutoMigrate {
		return db, nil
	}

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	if applied > 0 {
		slog.Info("applied migrations", "count", applied)
	}

	return db, nil
}
