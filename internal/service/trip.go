package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/itinerary"
	"github.com/pkordes/itinerary/internal/repo"
)

// TripService reads and deletes stored trips.
// Status is recomputed against the service clock on every read, so a trip
// that was upcoming when imported becomes past once its end date goes by.
type TripService struct {
	repo repo.TripRepo
	now  func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// A nil now uses time.Now.
func NewTripService(r repo.TripRepo, now func() time.Time) *TripService {
	if now == nil {
		now = time.Now
	}
	return &TripService{repo: r, now: now}
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	t.Status = itinerary.StatusAt(t.EndDate, s.now())
	return t, nil
}

// ListPaged returns one page of trips and the total count.
func (s *TripService) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	now := s.now()
	for i := range trips {
		trips[i].Status = itinerary.StatusAt(trips[i].EndDate, now)
	}
	return trips, total, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}
