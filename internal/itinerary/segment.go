package itinerary

import (
	"math"

	"github.com/pkordes/itinerary/internal/domain"
)

// Gap thresholds in days.
const (
	// MaxGapDays: a gap strictly greater than this always starts a new trip.
	MaxGapDays = 21.0
	// LooseGapDays: an unconnected leg departing within this many days of the
	// previous arrival still belongs to the same trip.
	LooseGapDays = 4.0
)

// Decision is the outcome of evaluating one record against the current batch.
type Decision int

const (
	// Merge appends the record to the current batch.
	Merge Decision = iota
	// MergeAndSeal appends the record and closes the batch: it is the closing
	// leg of a round trip.
	MergeAndSeal
	// SealAndStartNew closes the current batch without the record and starts a
	// new batch with it.
	SealAndStartNew
)

func (d Decision) String() string {
	switch d {
	case Merge:
		return "merge"
	case MergeAndSeal:
		return "merge_and_seal"
	case SealAndStartNew:
		return "seal_and_start_new"
	}
	return "unknown"
}

// Decide applies the segmentation rules in fixed priority order:
//
//  1. gapDays > MaxGapDays    → SealAndStartNew
//  2. returningHome           → MergeAndSeal
//  3. connected               → Merge
//  4. gapDays < LooseGapDays  → Merge
//  5. otherwise               → SealAndStartNew
//
// A NaN gap (unparsable timestamps) satisfies neither threshold.
func Decide(gapDays float64, returningHome, connected bool) Decision {
	switch {
	case gapDays > MaxGapDays:
		return SealAndStartNew
	case returningHome:
		return MergeAndSeal
	case connected:
		return Merge
	case gapDays < LooseGapDays:
		return Merge
	default:
		return SealAndStartNew
	}
}

// GapDays returns the time between prev's arrival and next's departure in
// fractional days. It is negative when the legs overlap and NaN when either
// instant cannot be parsed.
func GapDays(prev, next domain.TransportRecord) float64 {
	arr, ok := arrivalInstant(prev)
	if !ok {
		return math.NaN()
	}
	dep, ok := departureInstant(next)
	if !ok {
		return math.NaN()
	}
	return dep.Sub(arr).Hours() / 24
}

// scan is the accumulator threaded through Segment.
type scan struct {
	current  []domain.TransportRecord
	homeBase string
	sealed   [][]domain.TransportRecord
}

// start opens a new batch with rec. A record that departs from and returns to
// the same place closes its batch immediately.
func (s *scan) start(rec domain.TransportRecord) {
	s.current = []domain.TransportRecord{rec}
	s.homeBase = rec.Origin
	if rec.Destination == s.homeBase {
		s.seal()
	}
}

func (s *scan) seal() {
	if len(s.current) > 0 {
		s.sealed = append(s.sealed, s.current)
	}
	s.current = nil
	s.homeBase = ""
}

func (s *scan) step(rec domain.TransportRecord) {
	if len(s.current) == 0 {
		s.start(rec)
		return
	}
	last := s.current[len(s.current)-1]
	d := Decide(
		GapDays(last, rec),
		rec.Destination == s.homeBase,
		rec.Origin == last.Destination,
	)
	switch d {
	case Merge:
		s.current = append(s.current, rec)
	case MergeAndSeal:
		s.current = append(s.current, rec)
		s.seal()
	case SealAndStartNew:
		s.seal()
		s.start(rec)
	}
}

// Segment partitions chronologically sorted records into batches, one per
// trip, in the order the batches were sealed. Each record lands in exactly one
// batch. The input slice is not modified.
func Segment(sorted []domain.TransportRecord) [][]domain.TransportRecord {
	s := &scan{}
	for _, rec := range sorted {
		s.step(rec)
	}
	s.seal()
	if s.sealed == nil {
		return [][]domain.TransportRecord{}
	}
	return s.sealed
}
