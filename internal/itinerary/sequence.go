package itinerary

import (
	"slices"
	"time"

	"github.com/pkordes/itinerary/internal/domain"
)

// Sequence returns a copy of records in chronological order of departure.
//
// The sort key is DepartureDate + "T" + DepartureTime parsed as a naive local
// instant. Records whose key does not parse sort first, as if they departed
// at the zero time. The sort is stable: equal keys keep their input order.
// The input slice is never modified.
func Sequence(records []domain.TransportRecord) []domain.TransportRecord {
	out := slices.Clone(records)
	if out == nil {
		return []domain.TransportRecord{}
	}
	slices.SortStableFunc(out, func(a, b domain.TransportRecord) int {
		return sortKey(a).Compare(sortKey(b))
	})
	return out
}

func sortKey(rec domain.TransportRecord) time.Time {
	t, ok := departureInstant(rec)
	if !ok {
		return time.Time{}
	}
	return t
}

// departureInstant parses the record's departure as a naive instant.
func departureInstant(rec domain.TransportRecord) (time.Time, bool) {
	return parseInstant(rec.DepartureDate, rec.DepartureTime)
}

// arrivalInstant parses the record's arrival as a naive instant. A blank
// arrival date falls back to the departure date; a record with no usable
// arrival falls back to its departure instant.
func arrivalInstant(rec domain.TransportRecord) (time.Time, bool) {
	date := rec.ArrivalDate
	if date == "" {
		date = rec.DepartureDate
	}
	if t, ok := parseInstant(date, rec.ArrivalTime); ok {
		return t, true
	}
	return departureInstant(rec)
}

func parseInstant(date, clock string) (time.Time, bool) {
	t, err := time.Parse(instantLayout, date+"T"+clock)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
