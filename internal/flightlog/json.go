package flightlog

import (
	"bytes"
	"encoding/json"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/itinerary"
)

// flightIn is one element of an imported JSON flight log. Several keys may
// carry the same logical field; see normalizeFlight for the priority order.
type flightIn struct {
	Date               string     `json:"date"`
	Departure          string     `json:"departure"`
	DepartureScheduled string     `json:"departureScheduled"`
	DepartureActual    string     `json:"departureActual"`
	Arrival            string     `json:"arrival"`
	ArrivalScheduled   string     `json:"arrivalScheduled"`
	ArrivalActual      string     `json:"arrivalActual"`
	FlightNumber       string     `json:"flightNumber"`
	FlightReason       string     `json:"flightReason"`
	PNR                string     `json:"pnr"`
	From               airportIn  `json:"from"`
	To                 airportIn  `json:"to"`
	Airline            namedIn    `json:"airline"`
	Aircraft           namedIn    `json:"aircraft"`
	Seats              []seatJSON `json:"seats"`
}

type airportIn struct {
	IATA string   `json:"iata"`
	ICAO string   `json:"icao"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

type namedIn struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// seatJSON is shared by import and export.
type seatJSON struct {
	SeatNumber string `json:"seatNumber"`
	SeatClass  string `json:"seatClass"`
	Seat       string `json:"seat"`
}

// ParseJSON reads a JSON flight log into normalized records.
//
// The document is either {"flights": [...]} or a bare array. Anything else,
// including invalid JSON, is a *domain.ParseError. An element that cannot be
// decoded as a flight is skipped, not reported.
func (im *Importer) ParseJSON(content []byte) ([]domain.TransportRecord, error) {
	elements, err := flightElements(content)
	if err != nil {
		return nil, err
	}

	records := make([]domain.TransportRecord, 0, len(elements))
	for _, raw := range elements {
		var f flightIn
		if err := json.Unmarshal(raw, &f); err != nil {
			continue
		}
		records = append(records, im.normalizeFlight(f))
	}
	return records, nil
}

func flightElements(content []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, &domain.ParseError{Format: FormatJSON, Reason: "empty document"}
	}

	switch trimmed[0] {
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, &domain.ParseError{Format: FormatJSON, Reason: "invalid JSON", Err: err}
		}
		return elements, nil
	case '{':
		var doc struct {
			Flights *[]json.RawMessage `json:"flights"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, &domain.ParseError{Format: FormatJSON, Reason: "invalid JSON", Err: err}
		}
		if doc.Flights == nil {
			return nil, &domain.ParseError{Format: FormatJSON, Reason: `object has no "flights" array`}
		}
		return *doc.Flights, nil
	default:
		return nil, &domain.ParseError{Format: FormatJSON, Reason: "top level must be an object or an array"}
	}
}

func (im *Importer) normalizeFlight(f flightIn) domain.TransportRecord {
	rec := domain.TransportRecord{
		ID:                im.engine.NewID(),
		Mode:              domain.ModeFlight,
		Origin:            itinerary.FirstNonEmpty(f.From.IATA, f.From.ICAO, f.From.Name),
		Destination:       itinerary.FirstNonEmpty(f.To.IATA, f.To.ICAO, f.To.Name),
		Provider:          itinerary.FirstNonEmpty(f.Airline.Name, f.Airline.Code),
		Identifier:        itinerary.FirstNonEmpty(f.FlightNumber),
		ConfirmationCode:  itinerary.FirstNonEmpty(f.PNR),
		VehicleModel:      itinerary.FirstNonEmpty(f.Aircraft.Name, f.Aircraft.Code),
		Reason:            itinerary.FirstNonEmpty(f.FlightReason),
		OriginCoords:      coords(f.From),
		DestinationCoords: coords(f.To),
	}
	if len(f.Seats) > 0 {
		s := f.Seats[0]
		rec.Seat = itinerary.FirstNonEmpty(s.SeatNumber)
		rec.CabinClass = itinerary.FirstNonEmpty(s.SeatClass)
		rec.SeatType = itinerary.FirstNonEmpty(s.Seat)
	}
	itinerary.ApplySchedule(&rec, itinerary.Schedule{
		Date:             f.Date,
		DepartureInstant: itinerary.FirstNonEmpty(f.Departure, f.DepartureScheduled, f.DepartureActual),
		ArrivalInstant:   itinerary.FirstNonEmpty(f.Arrival, f.ArrivalScheduled, f.ArrivalActual),
	})
	return rec
}

// coords returns nil unless both latitude and longitude are present.
func coords(a airportIn) *domain.Coordinates {
	if a.Lat == nil || a.Lon == nil {
		return nil
	}
	return &domain.Coordinates{Lat: *a.Lat, Lon: *a.Lon}
}
