// Package handler implements the HTTP handlers for the itinerary API.
// All handlers are methods on Server; Routes mounts them on a chi router.
// Methods are split into resource files (health.go, imports.go, trips.go,
// export.go) but share the same Server struct and its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/service"
)

// ImportServicer defines the import operation the imports handler depends on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type ImportServicer interface {
	Import(ctx context.Context, req service.ImportRequest) ([]domain.Trip, error)
}

// TripServicer defines the trip operations the trips handler depends on.
type TripServicer interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExportServicer defines the export operation.
type ExportServicer interface {
	Export(ctx context.Context, format string) ([]byte, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	imports ImportServicer
	trips   TripServicer
	export  ExportServicer
	logger  *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default.
func NewServer(imports ImportServicer, trips TripServicer, export ExportServicer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{imports: imports, trips: trips, export: export, logger: logger}
}

// Routes returns a router with every API endpoint registered.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Post("/imports", s.CreateImport)
	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Get("/{id}", s.GetTrip)
		r.Delete("/{id}", s.DeleteTrip)
	})
	r.Get("/export", s.GetExport)
	return r
}

// writeJSON encodes v as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}
