package flightlog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/itinerary"
)

// Column names of the tabular flight log.
const (
	colDate          = "Date"
	colAirline       = "Airline"
	colFlight        = "Flight"
	colFrom          = "From"
	colTo            = "To"
	colDepScheduled  = "Gate Departure (Scheduled)"
	colDepActual     = "Gate Departure (Actual)"
	colArrScheduled  = "Gate Arrival (Scheduled)"
	colArrActual     = "Gate Arrival (Actual)"
	colAircraft      = "Aircraft Type Name"
	colPNR           = "PNR"
	colSeat          = "Seat"
	colSeatType      = "Seat Type"
	colCabinClass    = "Cabin Class"
	colFlightReason  = "Flight Reason"
	colDepCombined   = "Gate Departure (Scheduled/Actual)"
	colArrCombined   = "Gate Arrival (Scheduled/Actual)"
	colDepTimeLegacy = "Departure Time"
	colArrTimeLegacy = "Arrival Time"
)

// Candidate headers per logical field, highest priority first.
var (
	departureKeys = []string{colDepScheduled, colDepActual, colDepCombined}
	arrivalKeys   = []string{colArrScheduled, colArrActual, colArrCombined}
	originKeys    = []string{colFrom, "Origin"}
	destKeys      = []string{colTo, "Destination"}
)

// knownColumns is used to recognise a header row.
var knownColumns = map[string]bool{
	colDate: true, colAirline: true, colFlight: true, colFrom: true, colTo: true,
	colDepScheduled: true, colDepActual: true, colArrScheduled: true, colArrActual: true,
	colDepCombined: true, colArrCombined: true, colAircraft: true, colPNR: true,
	colSeat: true, colSeatType: true, colCabinClass: true, colFlightReason: true,
}

// ParseCSV reads a tabular flight log into normalized records.
//
// The first non-blank line is the header; each later line maps positionally
// onto it. Blank lines are skipped and a single layer of double quotes around
// a value is removed. Content with no lines at all yields no records. A first
// line that names none of the known columns is reported as a missing header.
// Records without a usable departure date are kept here with an empty
// DepartureDate; the engine drops them.
func (im *Importer) ParseCSV(content []byte) ([]domain.TransportRecord, error) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))

	r := csv.NewReader(bytes.NewReader(content))
	r.Comma = im.delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var header []string
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return []domain.TransportRecord{}, nil
		}
		if err != nil {
			return nil, &domain.ParseError{Format: FormatCSV, Reason: "unreadable header row", Err: err}
		}
		if !isBlank(fields) {
			header = fields
			break
		}
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	if !hasKnownColumn(header) {
		return nil, &domain.ParseError{Format: FormatCSV, Reason: "missing header row"}
	}

	records := []domain.TransportRecord{}
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.ParseError{Format: FormatCSV, Reason: "malformed row", Err: err}
		}
		if isBlank(fields) {
			continue
		}
		records = append(records, im.normalizeRow(toRow(header, fields)))
	}
	return records, nil
}

func (im *Importer) normalizeRow(row itinerary.Row) domain.TransportRecord {
	rec := domain.TransportRecord{
		ID:               im.engine.NewID(),
		Mode:             domain.ModeFlight,
		Origin:           row.First(originKeys...),
		Destination:      row.First(destKeys...),
		Provider:         row.First(colAirline),
		Identifier:       row.First(colFlight),
		ConfirmationCode: row.First(colPNR),
		Seat:             row.First(colSeat),
		SeatType:         row.First(colSeatType),
		CabinClass:       row.First(colCabinClass),
		VehicleModel:     row.First(colAircraft),
		Reason:           row.First(colFlightReason),
	}
	itinerary.ApplySchedule(&rec, itinerary.Schedule{
		Date:             row.First(colDate),
		DepartureInstant: row.First(departureKeys...),
		ArrivalInstant:   row.First(arrivalKeys...),
		DepartureClock:   row.First(colDepTimeLegacy),
		ArrivalClock:     row.First(colArrTimeLegacy),
	})
	return rec
}

// toRow maps fields onto header names. Missing trailing fields are empty and
// surplus fields are ignored.
func toRow(header, fields []string) itinerary.Row {
	row := make(itinerary.Row, len(header))
	for i, h := range header {
		if i < len(fields) {
			row[h] = strings.TrimSpace(fields[i])
		}
	}
	return row
}

func hasKnownColumn(header []string) bool {
	for _, h := range header {
		if knownColumns[h] {
			return true
		}
	}
	return false
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
