package itinerary_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/itinerary"
)

func TestEngine_ScenarioRoundTrip(t *testing.T) {
	e := fixedEngine(march1)

	trips := e.Reconstruct([]domain.TransportRecord{
		leg("LON", "NYC", day(5)),
		leg("NYC", "LON", day(1)),
	}, "user-1")

	require.Len(t, trips, 1)
	assert.Equal(t, "Trip to LON", trips[0].Name)
	assert.Equal(t, day(1), trips[0].StartDate)
	assert.Equal(t, day(5), trips[0].EndDate)
	assert.Len(t, trips[0].Transports, 2)
}

func TestEngine_ScenarioMultiCity(t *testing.T) {
	e := fixedEngine(march1)

	trips := e.Reconstruct([]domain.TransportRecord{
		leg("NYC", "LON", day(1)),
		leg("LON", "PAR", day(3)),
		leg("PAR", "NYC", day(7)),
	}, "user-1")

	require.Len(t, trips, 1)
	assert.Equal(t, "Trip to LON & PAR", trips[0].Name)
	assert.Len(t, trips[0].Transports, 3)
}

func TestEngine_ScenarioLongGap(t *testing.T) {
	e := fixedEngine(march1)

	trips := e.Reconstruct([]domain.TransportRecord{
		leg("NYC", "LON", day(1)),
		leg("LON", "NYC", day(40)),
	}, "user-1")

	require.Len(t, trips, 2)
	assert.Equal(t, "Trip to LON", trips[0].Name)
	assert.Equal(t, "Trip to NYC", trips[1].Name)
	assert.Len(t, trips[0].Transports, 1)
	assert.Len(t, trips[1].Transports, 1)
}

func TestEngine_ScenarioMalformedDropped(t *testing.T) {
	e := fixedEngine(march1)
	bad := leg("LON", "PAR", "")

	trips := e.Reconstruct([]domain.TransportRecord{
		leg("NYC", "LON", day(1)),
		bad,
		leg("LON", "NYC", day(4)),
	}, "user-1")

	require.Len(t, trips, 1)
	assert.NotContains(t, legIDs(trips), bad.ID)
	assert.Len(t, trips[0].Transports, 2)
}

func TestEngine_Empty(t *testing.T) {
	trips := fixedEngine(march1).Reconstruct(nil, "user-1")

	assert.NotNil(t, trips)
	assert.Empty(t, trips)
}

func TestEngine_LegUnionPreserved(t *testing.T) {
	records := []domain.TransportRecord{
		leg("NYC", "LON", day(1)),
		leg("LON", "PAR", day(3)),
		leg("PAR", "NYC", day(7)),
		leg("NYC", "NYC", day(8)),
		leg("BOS", "SFO", day(20)),
		leg("SFO", "LAX", day(22)),
		leg("XXX", "YYY", ""),
		leg("LAX", "BOS", day(60)),
		leg("ORD", "DEN", "not a date"),
	}

	trips := fixedEngine(march1).Reconstruct(records, "user-1")

	var want []uuid.UUID
	for _, r := range records {
		if itinerary.Eligible(r) {
			want = append(want, r.ID)
		}
	}
	got := legIDs(trips)
	assert.ElementsMatch(t, want, got, "every eligible record appears in exactly one trip")
}

func TestEngine_Deterministic(t *testing.T) {
	records := []domain.TransportRecord{
		leg("PAR", "NYC", day(7)),
		leg("NYC", "LON", day(1)),
		leg("LON", "PAR", day(3)),
		leg("BOS", "SFO", day(50)),
	}

	first, err := json.Marshal(fixedEngine(march1).Reconstruct(records, "user-1"))
	require.NoError(t, err)
	second, err := json.Marshal(fixedEngine(march1).Reconstruct(records, "user-1"))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestEngine_StatusDependsOnNow(t *testing.T) {
	records := []domain.TransportRecord{leg("NYC", "LON", day(1))}

	before := fixedEngine(march1).Reconstruct(records, "u")
	after := fixedEngine(march1.AddDate(0, 1, 0)).Reconstruct(records, "u")

	assert.Equal(t, domain.StatusUpcoming, before[0].Status)
	assert.Equal(t, domain.StatusPast, after[0].Status)
}

func TestEngine_TripsInSealOrder(t *testing.T) {
	trips := fixedEngine(march1).Reconstruct([]domain.TransportRecord{
		leg("BOS", "SFO", day(50)),
		leg("NYC", "LON", day(1)),
		leg("LON", "NYC", day(4)),
	}, "u")

	require.Len(t, trips, 2)
	assert.Equal(t, day(1), trips[0].StartDate)
	assert.Equal(t, day(50), trips[1].StartDate)
}

func TestNew_UsesWallClock(t *testing.T) {
	e := itinerary.New()

	assert.WithinDuration(t, time.Now(), e.Now(), time.Minute)
	assert.NotEqual(t, e.NewID(), e.NewID())
}
