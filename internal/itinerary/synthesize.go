package itinerary

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
)

// Synthesize builds a Trip from one sealed, time-ordered batch.
// It panics on an empty batch; Segment never produces one.
func Synthesize(batch []domain.TransportRecord, subjectID string, id uuid.UUID, now time.Time) domain.Trip {
	first := batch[0]
	last := batch[len(batch)-1]

	endDate := last.ArrivalDate
	if endDate == "" {
		endDate = last.DepartureDate
	}

	dests := visited(batch)
	location := last.Destination
	if len(dests) > 0 {
		location = dests[0]
	}

	legs := make([]domain.TransportRecord, len(batch))
	copy(legs, batch)

	return domain.Trip{
		ID:             id,
		Name:           TripName(dests, last.Destination),
		Location:       location,
		StartDate:      first.DepartureDate,
		EndDate:        endDate,
		Status:         StatusAt(endDate, now),
		Transports:     legs,
		Participants:   []string{subjectID},
		Icon:           domain.DefaultTripIcon,
		DurationMode:   domain.DefaultDurationMode,
		Accommodations: []string{},
		Activities:     []string{},
		Locations:      []string{},
	}
}

// visited returns the distinct destinations of batch in first-seen order,
// excluding the batch origin.
func visited(batch []domain.TransportRecord) []string {
	origin := batch[0].Origin
	seen := make(map[string]bool, len(batch))
	var out []string
	for _, leg := range batch {
		d := leg.Destination
		if d == origin || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// TripName derives a display name from the visited destinations.
// fallback names the trip when nothing other than the origin was visited.
func TripName(dests []string, fallback string) string {
	switch len(dests) {
	case 0:
		return "Trip to " + fallback
	case 1:
		return "Trip to " + dests[0]
	case 2:
		return fmt.Sprintf("Trip to %s & %s", dests[0], dests[1])
	default:
		return fmt.Sprintf("Tour: %s, %s...", dests[0], dests[1])
	}
}

// StatusAt reports StatusPast when endDate is a calendar day strictly before
// the day of now (in now's location), StatusUpcoming otherwise. A trip ending
// today is upcoming. An unparsable endDate counts as past.
func StatusAt(endDate string, now time.Time) domain.TripStatus {
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return domain.StatusPast
	}
	if end.Format(dateLayout) < now.Format(dateLayout) {
		return domain.StatusPast
	}
	return domain.StatusUpcoming
}
