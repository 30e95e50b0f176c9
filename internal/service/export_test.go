package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/service"
)

func listRepo(trips ...domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) { return trips, nil },
	}
}

func exportTrip() domain.Trip {
	t := storedTrip("2025-03-01", "2025-03-05")
	t.Transports = []domain.TransportRecord{
		{
			Mode: domain.ModeFlight, Origin: "OPO", Destination: "LIS",
			DepartureDate: "2025-03-01", DepartureTime: "09:00",
			ArrivalDate: "2025-03-01", ArrivalTime: "10:00",
			Provider: "TAP", Identifier: "TP1951",
		},
		{
			Mode: domain.ModeTrain, Origin: "LIS", Destination: "FAO",
			DepartureDate: "2025-03-02", DepartureTime: "09:00",
		},
	}
	return t
}

func TestExportService_Export_CSV(t *testing.T) {
	svc := service.NewExportService(listRepo(exportTrip()))

	out, err := svc.Export(context.Background(), "csv")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 2, "header plus the single flight leg")
	assert.True(t, strings.HasPrefix(lines[0], "Date,"))
	assert.Contains(t, lines[1], "TP1951")
}

func TestExportService_Export_JSON(t *testing.T) {
	svc := service.NewExportService(listRepo(exportTrip()))

	out, err := svc.Export(context.Background(), "JSON")

	require.NoError(t, err)
	var doc struct {
		Flights []map[string]any `json:"flights"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Len(t, doc.Flights, 1)
	assert.Equal(t, "TP1951", doc.Flights[0]["flightNumber"])
}

func TestExportService_Export_NoTrips(t *testing.T) {
	svc := service.NewExportService(listRepo())

	out, err := svc.Export(context.Background(), "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"flights":[]}`, string(out))
}

func TestExportService_Export_UnknownFormat(t *testing.T) {
	svc := service.NewExportService(&mockTripRepo{})

	_, err := svc.Export(context.Background(), "xlsx")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExportService_Export_RepoError(t *testing.T) {
	repoErr := errors.New("connection refused")
	svc := service.NewExportService(&mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) { return nil, repoErr },
	})

	_, err := svc.Export(context.Background(), "csv")

	assert.ErrorIs(t, err, repoErr)
}
