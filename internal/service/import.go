// Package service contains the business logic for the itinerary API.
// Services validate inputs, apply business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/flightlog"
	"github.com/pkordes/itinerary/internal/logging"
	"github.com/pkordes/itinerary/internal/repo"
)

// Importer is the subset of *flightlog.Importer the import service needs.
type Importer interface {
	ImportCSV(content []byte, subjectID string) ([]domain.Trip, error)
	ImportJSON(content []byte, subjectID string) ([]domain.Trip, error)
}

// ImportRequest is one uploaded flight log.
type ImportRequest struct {
	// Format is flightlog.FormatCSV or flightlog.FormatJSON, case-insensitive.
	Format string `validate:"oneof=csv json"`
	// SubjectID is recorded as the single participant of every trip.
	SubjectID string `validate:"required"`
	Content   []byte
	// DryRun reconstructs trips without persisting them.
	DryRun bool
}

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// ImportService turns uploaded flight logs into stored trips.
type ImportService struct {
	importer Importer
	trips    repo.TripRepo
	logger   *slog.Logger
}

// NewImportService constructs an ImportService.
func NewImportService(im Importer, trips repo.TripRepo, logger *slog.Logger) *ImportService {
	return &ImportService{importer: im, trips: trips, logger: logger}
}

// Import parses req.Content, reconstructs trips and, unless req.DryRun is set,
// stores them. A broken document returns an error wrapping domain.ErrParse.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) ([]domain.Trip, error) {
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	req.SubjectID = strings.TrimSpace(req.SubjectID)
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("service.ImportService.Import: %w: %s", domain.ErrValidation, describe(err))
	}
	subject := req.SubjectID

	started := time.Now()

	var (
		trips []domain.Trip
		err   error
	)
	if req.Format == flightlog.FormatCSV {
		trips, err = s.importer.ImportCSV(req.Content, subject)
	} else {
		trips, err = s.importer.ImportJSON(req.Content, subject)
	}
	if err != nil {
		logging.LogError(s.logger, "import_failed", err,
			slog.String("format", req.Format),
			slog.Int("bytes", len(req.Content)))
		return nil, fmt.Errorf("service.ImportService.Import: %w", err)
	}

	if !req.DryRun && len(trips) > 0 {
		trips, err = s.trips.CreateMany(ctx, trips)
		if err != nil {
			return nil, fmt.Errorf("service.ImportService.Import: %w", err)
		}
	}

	logging.LogOperation(s.logger, "import_completed",
		slog.String("format", req.Format),
		slog.String("subject", subject),
		slog.Int("trips", len(trips)),
		slog.Int("legs", legCount(trips)),
		slog.Bool("dry_run", req.DryRun),
		slog.Duration("duration", time.Since(started)))

	return trips, nil
}

// describe turns the first validator failure into a client-facing message.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	switch fe := verrs[0]; fe.Field() {
	case "SubjectID":
		return "subject is required"
	case "Format":
		if fe.Value() == "" {
			return "format is required (csv or json)"
		}
		return fmt.Sprintf("unsupported format %q", fe.Value())
	default:
		return fe.Error()
	}
}

func legCount(trips []domain.Trip) int {
	n := 0
	for _, t := range trips {
		n += len(t.Transports)
	}
	return n
}
