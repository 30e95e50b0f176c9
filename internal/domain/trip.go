// Package domain contains the core data types for the itinerary service.
// This package depends only on uuid and is imported by every other
// internal package (itinerary, flightlog, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is derived from a trip's end date relative to "now".
// It is a projection, not a stored fact: recompute it whenever the clock moves.
type TripStatus string

const (
	StatusUpcoming TripStatus = "upcoming"
	StatusPast     TripStatus = "past"
)

// Presentation defaults for freshly reconstructed trips.
const (
	DefaultTripIcon     = "suitcase"
	DefaultDurationMode = "days"
)

// Trip is a contiguous journey reconstructed from transport records.
// Transports are in chronological order; StartDate and EndDate are
// "2006-01-02" strings taken from the first and last leg.
type Trip struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Location     string            `json:"location"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	Status       TripStatus        `json:"status"`
	Transports   []TransportRecord `json:"transports"`
	Participants []string          `json:"participants"`

	// Placeholders for the surrounding application; never computed here.
	Icon           string   `json:"icon"`
	DurationMode   string   `json:"duration_mode"`
	Accommodations []string `json:"accommodations"`
	Activities     []string `json:"activities"`
	Locations      []string `json:"locations"`

	// Set by the repo layer when a trip is persisted; zero before that.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
