package domain

import "github.com/google/uuid"

// Mode is the kind of vehicle a TransportRecord describes.
type Mode string

const (
	ModeFlight      Mode = "flight"
	ModeTrain       Mode = "train"
	ModeBus         Mode = "bus"
	ModeCarRental   Mode = "car_rental"
	ModePersonalCar Mode = "personal_car"
	ModeCruise      Mode = "cruise"
	ModeFerry       Mode = "ferry"
	ModeOther       Mode = "other"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TransportRecord is one normalized leg: a single movement from Origin to
// Destination. Dates are "2006-01-02" and times "15:04" local wall-clock
// strings, kept separate and never combined with a timezone.
//
// Origin and Destination are compared by exact string equality everywhere.
// The enrichment fields below Identifier are carried through unchanged and
// never inspected by segmentation.
type TransportRecord struct {
	ID            uuid.UUID `json:"id"`
	Mode          Mode      `json:"mode"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureDate string    `json:"departure_date"`
	DepartureTime string    `json:"departure_time"`
	ArrivalDate   string    `json:"arrival_date"`
	ArrivalTime   string    `json:"arrival_time"`

	Provider         string `json:"provider"`
	Identifier       string `json:"identifier"`
	ConfirmationCode string `json:"confirmation_code"`

	Seat              string       `json:"seat"`
	SeatType          string       `json:"seat_type"`
	CabinClass        string       `json:"cabin_class"`
	VehicleModel      string       `json:"vehicle_model"`
	Reason            string       `json:"reason"`
	Cost              *float64     `json:"cost,omitempty"`
	OriginCoords      *Coordinates `json:"origin_coords,omitempty"`
	DestinationCoords *Coordinates `json:"destination_coords,omitempty"`
}
