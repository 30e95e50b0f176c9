package itinerary

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
)

// Engine runs the reconstruction pipeline. Its fields are read-only after
// construction, so one Engine may be shared by concurrent callers as long as
// Now and NewID are themselves safe for concurrent use.
type Engine struct {
	// Now is the clock used to derive trip status.
	Now func() time.Time
	// NewID produces identifiers for trips and, via the importers, records.
	NewID func() uuid.UUID
}

// New returns an Engine using the wall clock and random UUIDs.
func New() *Engine {
	return &Engine{Now: time.Now, NewID: uuid.New}
}

// Reconstruct turns records into trips for subjectID.
//
// Ineligible records (no departure date) are dropped. The remaining records
// are sequenced, segmented and synthesized; every one of them appears in
// exactly one returned trip. No records yields an empty, non-nil slice.
// records is not modified.
func (e *Engine) Reconstruct(records []domain.TransportRecord, subjectID string) []domain.Trip {
	batches := Segment(Sequence(FilterEligible(records)))
	now := e.Now()

	trips := make([]domain.Trip, 0, len(batches))
	for _, batch := range batches {
		trips = append(trips, Synthesize(batch, subjectID, e.NewID(), now))
	}
	return trips
}
