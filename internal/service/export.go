package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/flightlog"
	"github.com/pkordes/itinerary/internal/repo"
)

// ExportService renders every stored trip as a flight log.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns the flight legs of all trips in chronological order,
// encoded as format. Non-flight legs are left out.
func (s *ExportService) Export(ctx context.Context, format string) ([]byte, error) {
	format = strings.ToLower(format)
	if format != flightlog.FormatCSV && format != flightlog.FormatJSON {
		return nil, fmt.Errorf("service.ExportService.Export: %w: unsupported format %q", domain.ErrValidation, format)
	}

	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	var out []byte
	if format == flightlog.FormatCSV {
		out, err = flightlog.ExportCSV(trips)
	} else {
		out, err = flightlog.ExportJSON(trips)
	}
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return out, nil
}
