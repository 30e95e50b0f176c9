package handler_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/handler"
	"github.com/pkordes/itinerary/internal/service"
)

// mockImportServicer is a test double for handler.ImportServicer.
type mockImportServicer struct {
	importFn func(ctx context.Context, req service.ImportRequest) ([]domain.Trip, error)
}

func (m *mockImportServicer) Import(ctx context.Context, req service.ImportRequest) ([]domain.Trip, error) {
	return m.importFn(ctx, req)
}

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func(ctx context.Context, format string) ([]byte, error)
}

func (m *mockExportServicer) Export(ctx context.Context, format string) ([]byte, error) {
	return m.export(ctx, format)
}

// compile-time checks.
var (
	_ handler.ImportServicer = (*mockImportServicer)(nil)
	_ handler.TripServicer   = (*mockTripServicer)(nil)
	_ handler.ExportServicer = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// services bundles the doubles wired into one test router. Nil fields get
// empty mocks whose methods panic if called.
type services struct {
	imports *mockImportServicer
	trips   *mockTripServicer
	export  *mockExportServicer
}

func newHTTPHandler(svc services) http.Handler {
	if svc.imports == nil {
		svc.imports = &mockImportServicer{}
	}
	if svc.trips == nil {
		svc.trips = &mockTripServicer{}
	}
	if svc.export == nil {
		svc.export = &mockExportServicer{}
	}
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	return handler.NewServer(svc.imports, svc.trips, svc.export, logger).Routes()
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:           uuid.New(),
		Name:         "Trip to LIS",
		Location:     "LIS",
		StartDate:    "2025-06-01",
		EndDate:      "2025-06-15",
		Status:       domain.StatusUpcoming,
		Icon:         domain.DefaultTripIcon,
		DurationMode: domain.DefaultDurationMode,
		Participants: []string{"traveller-1"},
		Transports: []domain.TransportRecord{
			{ID: uuid.New(), Mode: domain.ModeFlight, Origin: "OPO", Destination: "LIS",
				DepartureDate: "2025-06-01", DepartureTime: "09:00",
				ArrivalDate: "2025-06-01", ArrivalTime: "10:00"},
			{ID: uuid.New(), Mode: domain.ModeFlight, Origin: "LIS", Destination: "OPO",
				DepartureDate: "2025-06-15", DepartureTime: "18:00",
				ArrivalDate: "2025-06-15", ArrivalTime: "19:00"},
		},
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
