// Package itinerary reconstructs trips from unordered transport records.
//
// The pipeline is Sequence → Segment → Synthesize, driven by Engine.Reconstruct.
// Everything in this package is a pure function of its inputs: no I/O, no
// logging, no shared mutable state. The clock and the id source are injected
// through Engine so results are reproducible in tests.
package itinerary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/itinerary/internal/domain"
)

// Placeholder times used when a source only supplies a calendar date.
// Arrival is later than departure so a date-only leg never has zero length.
const (
	DefaultDepartureTime = "09:00"
	DefaultArrivalTime   = "11:00"
)

const (
	dateLayout    = "2006-01-02"
	clockLayout   = "15:04"
	instantLayout = dateLayout + "T" + clockLayout
)

// isoLayouts are tried in order by SplitInstant. Layouts carrying an offset are
// parsed but never converted: the wall-clock digits as written are kept.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// dayFirst matches "DD/MM/YYYY" with an optional " HH:MM[:SS]" or "THH:MM[:SS]" suffix.
var dayFirst = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})(?:[ T](\d{1,2}:\d{2}(?::\d{2})?))?$`)

// SplitInstant splits an ISO-8601 instant into its local date and
// time-of-day by truncation. A bare "2006-01-02" yields a date and an empty
// clock. Anything unparsable yields two empty strings.
func SplitInstant(s string) (date, clock string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ""
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout), t.Format(clockLayout)
		}
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.Format(dateLayout), ""
	}
	return "", ""
}

// ParseDate returns s as a "2006-01-02" date. ISO dates and instants are
// truncated to their date part; "DD/MM/YYYY" is reordered. Any other shape
// returns "".
func ParseDate(s string) string {
	date, _ := SplitAny(s)
	return date
}

// SplitAny is SplitInstant extended with the day-first shape
// "DD/MM/YYYY[ HH:MM]". Unparsable input yields two empty strings.
func SplitAny(s string) (date, clock string) {
	if date, clock := SplitInstant(s); date != "" {
		return date, clock
	}
	m := dayFirst.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", ""
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	date = fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", ""
	}
	if m[4] == "" {
		return date, ""
	}
	clock = ParseClock(m[4])
	if clock == "" {
		return "", ""
	}
	return date, clock
}

// ParseClock returns s as a "15:04" time-of-day, accepting "15:04" and
// "15:04:05". Any other shape returns "".
func ParseClock(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{clockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(clockLayout)
		}
	}
	return ""
}

// Row is one tabular record keyed by header name.
type Row map[string]string

// First returns the first non-empty value among keys, tried in order.
// Values are trimmed; a missing key counts as empty.
func (r Row) First(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// FirstNonEmpty returns the first candidate that is non-empty after trimming.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if v := strings.TrimSpace(c); v != "" {
			return v
		}
	}
	return ""
}

// Schedule is the raw timing information of one leg as a source supplies it.
// DepartureInstant and ArrivalInstant are ISO-8601 instants; Date is a
// fallback calendar date used when the departure instant is unusable.
// DepartureClock and ArrivalClock are optional "15:04" values used when the
// instants are missing.
type Schedule struct {
	Date             string
	DepartureInstant string
	ArrivalInstant   string
	DepartureClock   string
	ArrivalClock     string
}

// ApplySchedule fills the four date/time fields of rec from s.
//
// Instants may be ISO-8601 or day-first "DD/MM/YYYY[ HH:MM]". The departure
// date comes from the departure instant, falling back to Date. A missing
// arrival date falls back to the departure date. A missing departure clock
// gets DefaultDepartureTime. A missing arrival clock gets DefaultArrivalTime
// when the departure clock is also a placeholder, and the departure clock
// otherwise, so the arrival never precedes a real departure. When no
// departure date can be derived the record is left with an empty
// DepartureDate and Eligible will reject it.
func ApplySchedule(rec *domain.TransportRecord, s Schedule) {
	depDate, depClock := SplitAny(s.DepartureInstant)
	if depDate == "" {
		depDate = ParseDate(s.Date)
	}
	if depClock == "" {
		depClock = ParseClock(s.DepartureClock)
	}

	arrDate, arrClock := SplitAny(s.ArrivalInstant)
	if arrClock == "" {
		arrClock = ParseClock(s.ArrivalClock)
	}

	if depDate == "" {
		return
	}
	if arrDate == "" {
		arrDate = depDate
	}
	if arrClock == "" {
		if depClock == "" {
			arrClock = DefaultArrivalTime
		} else {
			arrClock = depClock
		}
	}
	if depClock == "" {
		depClock = DefaultDepartureTime
	}

	rec.DepartureDate = depDate
	rec.DepartureTime = depClock
	rec.ArrivalDate = arrDate
	rec.ArrivalTime = arrClock
}

// Eligible reports whether rec may take part in segmentation.
func Eligible(rec domain.TransportRecord) bool {
	return strings.TrimSpace(rec.DepartureDate) != ""
}

// FilterEligible returns the eligible records of in, preserving order.
// The input slice is not modified.
func FilterEligible(in []domain.TransportRecord) []domain.TransportRecord {
	out := make([]domain.TransportRecord, 0, len(in))
	for _, rec := range in {
		if Eligible(rec) {
			out = append(out, rec)
		}
	}
	return out
}
