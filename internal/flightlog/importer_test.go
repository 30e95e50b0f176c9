package flightlog_test

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/flightlog"
	"github.com/pkordes/itinerary/internal/itinerary"
)

var testNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func sequentialIDs() func() uuid.UUID {
	n := 0
	return func() uuid.UUID {
		n++
		return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
	}
}

func newImporter(opts ...flightlog.Option) *flightlog.Importer {
	engine := &itinerary.Engine{
		Now:   func() time.Time { return testNow },
		NewID: sequentialIDs(),
	}
	return flightlog.NewImporter(engine, opts...)
}

// withoutIDs clears record ids so legs from two imports can be compared.
func withoutIDs(trips []domain.Trip) []domain.TransportRecord {
	var out []domain.TransportRecord
	for _, t := range trips {
		for _, l := range t.Transports {
			l.ID = uuid.Nil
			out = append(out, l)
		}
	}
	return out
}
