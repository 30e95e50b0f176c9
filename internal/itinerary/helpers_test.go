package itinerary_test

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/itinerary"
)

// day returns the date n-1 days after 2025-03-01, so day(1) is 2025-03-01.
func day(n int) string {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n-1).Format("2006-01-02")
}

// leg builds a flight that departs at 09:00 and arrives at 11:00 the same day.
func leg(origin, dest, date string) domain.TransportRecord {
	return domain.TransportRecord{
		ID:            uuid.New(),
		Mode:          domain.ModeFlight,
		Origin:        origin,
		Destination:   dest,
		DepartureDate: date,
		DepartureTime: "09:00",
		ArrivalDate:   date,
		ArrivalTime:   "11:00",
	}
}

// sequentialIDs returns an id source that yields 00000000-…-000000000001,
// …-000000000002 and so on, so two runs produce identical ids.
func sequentialIDs() func() uuid.UUID {
	n := 0
	return func() uuid.UUID {
		n++
		return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
	}
}

// fixedEngine returns an Engine frozen at now with sequential ids.
func fixedEngine(now time.Time) *itinerary.Engine {
	return &itinerary.Engine{
		Now:   func() time.Time { return now },
		NewID: sequentialIDs(),
	}
}

func legIDs(trips []domain.Trip) []uuid.UUID {
	var ids []uuid.UUID
	for _, t := range trips {
		for _, l := range t.Transports {
			ids = append(ids, l.ID)
		}
	}
	return ids
}
