// Package flightlog reads and writes flight logs in the tabular (CSV) and
// JSON shapes used by flight-tracking apps, and feeds them through the
// itinerary engine.
//
// Only the document envelope is handled here. Turning one row or element into
// a domain.TransportRecord uses the normalization primitives of package
// itinerary, and grouping into trips is entirely the engine's job.
package flightlog

import (
	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/itinerary"
)

// Format names accepted by the import and export entry points.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Importer parses flight logs and reconstructs trips from them.
// It holds no per-call state and is safe for concurrent use.
type Importer struct {
	engine    *itinerary.Engine
	delimiter rune
}

// Option configures an Importer.
type Option func(*Importer)

// WithDelimiter sets the CSV field delimiter. The default is ','.
func WithDelimiter(r rune) Option {
	return func(im *Importer) {
		if r != 0 {
			im.delimiter = r
		}
	}
}

// NewImporter returns an Importer that reconstructs trips with engine.
func NewImporter(engine *itinerary.Engine, opts ...Option) *Importer {
	im := &Importer{engine: engine, delimiter: ','}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImportCSV parses a tabular flight log and returns the trips it contains.
// A structurally broken document returns a *domain.ParseError and no trips.
func (im *Importer) ImportCSV(content []byte, subjectID string) ([]domain.Trip, error) {
	records, err := im.ParseCSV(content)
	if err != nil {
		return nil, err
	}
	return im.engine.Reconstruct(records, subjectID), nil
}

// ImportJSON parses a JSON flight log and returns the trips it contains.
// A structurally broken document returns a *domain.ParseError and no trips.
func (im *Importer) ImportJSON(content []byte, subjectID string) ([]domain.Trip, error) {
	records, err := im.ParseJSON(content)
	if err != nil {
		return nil, err
	}
	return im.engine.Reconstruct(records, subjectID), nil
}

// Reconstruct groups already-parsed records into trips.
func (im *Importer) Reconstruct(records []domain.TransportRecord, subjectID string) []domain.Trip {
	return im.engine.Reconstruct(records, subjectID)
}
