package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/repo"
	"github.com/pkordes/itinerary/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	createMany func(ctx context.Context, trips []domain.Trip) ([]domain.Trip, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list       func(ctx context.Context) ([]domain.Trip, error)
	listPaged  func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) CreateMany(ctx context.Context, trips []domain.Trip) ([]domain.Trip, error) {
	return m.createMany(ctx, trips)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

var clockNow = time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return clockNow }

func storedTrip(start, end string) domain.Trip {
	return domain.Trip{
		ID:           uuid.New(),
		Name:         "Trip to LIS",
		Location:     "LIS",
		StartDate:    start,
		EndDate:      end,
		Participants: []string{"traveller-1"},
	}
}

// ---- GetByID ---------------------------------------------------------------

func TestTripService_GetByID_ComputesStatus(t *testing.T) {
	tests := []struct {
		name string
		end  string
		want domain.TripStatus
	}{
		{"ended yesterday", "2025-06-09", domain.StatusPast},
		{"ends today", "2025-06-10", domain.StatusUpcoming},
		{"ends later", "2025-07-01", domain.StatusUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := storedTrip("2025-06-01", tt.end)
			svc := service.NewTripService(&mockTripRepo{
				getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return stored, nil },
			}, fixedClock)

			got, err := svc.GetByID(context.Background(), stored.ID)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestTripService_GetByID_NotFound(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}, fixedClock)

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListPaged ------------------------------------------------------------

func TestTripService_ListPaged(t *testing.T) {
	past := storedTrip("2025-05-01", "2025-05-03")
	upcoming := storedTrip("2025-07-01", "2025-07-05")

	var gotParams domain.PaginationParams
	svc := service.NewTripService(&mockTripRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			gotParams = p
			return []domain.Trip{past, upcoming}, 12, nil
		},
	}, fixedClock)

	params := domain.PaginationParams{Page: 2, Limit: 2}
	trips, total, err := svc.ListPaged(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, params, gotParams)
	assert.Equal(t, int64(12), total)
	require.Len(t, trips, 2)
	assert.Equal(t, domain.StatusPast, trips[0].Status)
	assert.Equal(t, domain.StatusUpcoming, trips[1].Status)
}

func TestTripService_ListPaged_RepoError(t *testing.T) {
	repoErr := errors.New("connection refused")
	svc := service.NewTripService(&mockTripRepo{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return nil, 0, repoErr
		},
	}, fixedClock)

	_, _, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 1, Limit: 20})

	assert.ErrorIs(t, err, repoErr)
}

// ---- Delete ---------------------------------------------------------------

func TestTripService_Delete(t *testing.T) {
	id := uuid.New()
	var deleted uuid.UUID
	svc := service.NewTripService(&mockTripRepo{
		delete: func(_ context.Context, got uuid.UUID) error {
			deleted = got
			return nil
		},
	}, fixedClock)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, id, deleted)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	svc := service.NewTripService(&mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}, fixedClock)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewTripService_DefaultClock(t *testing.T) {
	stored := storedTrip("2000-01-01", "2000-01-02")
	svc := service.NewTripService(&mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return stored, nil },
	}, nil)

	got, err := svc.GetByID(context.Background(), stored.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPast, got.Status)
}
