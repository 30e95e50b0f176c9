package flightlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/itinerary/internal/domain"
)

// csvHeader is the exact first line of every CSV export.
var csvHeader = []string{
	colDate, colAirline, colFlight, colFrom, colTo,
	colDepScheduled, colArrScheduled, colAircraft,
	colPNR, colSeat, colSeatType, colCabinClass, colFlightReason,
}

// flightOut is one element of an exported JSON flight log. Every string field
// is always present; unknown coordinates are null.
type flightOut struct {
	Date         string     `json:"date"`
	Departure    string     `json:"departure"`
	Arrival      string     `json:"arrival"`
	FlightNumber string     `json:"flightNumber"`
	FlightReason string     `json:"flightReason"`
	From         airportOut `json:"from"`
	To           airportOut `json:"to"`
	Airline      namedOut   `json:"airline"`
	Aircraft     namedOut   `json:"aircraft"`
	Seats        []seatJSON `json:"seats"`
}

type airportOut struct {
	IATA string   `json:"iata"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

type namedOut struct {
	Name string `json:"name"`
}

type documentOut struct {
	Flights []flightOut `json:"flights"`
}

// Exportable reports whether a leg belongs in a flight-log export.
func Exportable(rec domain.TransportRecord) bool {
	return rec.Mode == domain.ModeFlight
}

// flights flattens the exportable legs of trips in trip order, then leg order.
func flights(trips []domain.Trip) []domain.TransportRecord {
	var out []domain.TransportRecord
	for _, t := range trips {
		for _, leg := range t.Transports {
			if Exportable(leg) {
				out = append(out, leg)
			}
		}
	}
	return out
}

// ExportJSON serializes the flight legs of trips as {"flights": [...]}.
func ExportJSON(trips []domain.Trip) ([]byte, error) {
	doc := documentOut{Flights: []flightOut{}}
	for _, leg := range flights(trips) {
		doc.Flights = append(doc.Flights, toFlightOut(leg))
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("flightlog.ExportJSON: %w", err)
	}
	return b, nil
}

func toFlightOut(leg domain.TransportRecord) flightOut {
	return flightOut{
		Date:         leg.DepartureDate,
		Departure:    formatInstant(leg.DepartureDate, leg.DepartureTime),
		Arrival:      formatInstant(leg.ArrivalDate, leg.ArrivalTime),
		FlightNumber: leg.Identifier,
		FlightReason: leg.Reason,
		From:         toAirportOut(leg.Origin, leg.OriginCoords),
		To:           toAirportOut(leg.Destination, leg.DestinationCoords),
		Airline:      namedOut{Name: leg.Provider},
		Aircraft:     namedOut{Name: leg.VehicleModel},
		Seats: []seatJSON{{
			SeatNumber: leg.Seat,
			SeatClass:  leg.CabinClass,
			Seat:       leg.SeatType,
		}},
	}
}

func toAirportOut(code string, c *domain.Coordinates) airportOut {
	a := airportOut{IATA: code}
	if c != nil {
		lat, lon := c.Lat, c.Lon
		a.Lat, a.Lon = &lat, &lon
	}
	return a
}

// ExportCSV serializes the flight legs of trips as a tabular flight log.
// The airline and aircraft columns are always quoted; other fields are quoted
// only when they contain a delimiter, quote or line break.
func ExportCSV(trips []domain.Trip) ([]byte, error) {
	var buf bytes.Buffer
	writeCSVLine(&buf, csvHeader, nil)
	for _, leg := range flights(trips) {
		writeCSVLine(&buf, []string{
			leg.DepartureDate,
			leg.Provider,
			leg.Identifier,
			leg.Origin,
			leg.Destination,
			formatInstant(leg.DepartureDate, leg.DepartureTime),
			formatInstant(leg.ArrivalDate, leg.ArrivalTime),
			leg.VehicleModel,
			leg.ConfirmationCode,
			leg.Seat,
			leg.SeatType,
			leg.CabinClass,
			leg.Reason,
		}, alwaysQuoted)
	}
	return buf.Bytes(), nil
}

// alwaysQuoted marks the Airline and Aircraft Type Name columns.
var alwaysQuoted = map[int]bool{1: true, 7: true}

func writeCSVLine(buf *bytes.Buffer, fields []string, quoted map[int]bool) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(csvField(f, quoted[i]))
	}
	buf.WriteByte('\n')
}

// csvField encodes one value following RFC 4180 quoting rules.
func csvField(v string, force bool) string {
	if force || strings.ContainsAny(v, ",\"\r\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// formatInstant joins a local date and time into an RFC 3339 instant with a
// UTC suffix. The wall-clock digits are kept as-is. A blank time is midnight;
// a blank or unparsable date yields "".
func formatInstant(date, clock string) string {
	if date == "" {
		return ""
	}
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.Parse("2006-01-02T15:04", date+"T"+clock)
	if err != nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
