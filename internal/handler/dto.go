package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary/internal/domain"
)

// Trip is the wire form of a domain.Trip.
// Dates use openapi_types.Date so they encode as "2006-01-02".
type Trip struct {
	Id             openapi_types.UUID       `json:"id"`
	Name           string                   `json:"name"`
	Location       string                   `json:"location"`
	StartDate      *openapi_types.Date      `json:"start_date"`
	EndDate        *openapi_types.Date      `json:"end_date"`
	Status         string                   `json:"status"`
	Icon           string                   `json:"icon"`
	DurationMode   string                   `json:"duration_mode"`
	Participants   []string                 `json:"participants"`
	Accommodations []string                 `json:"accommodations"`
	Activities     []string                 `json:"activities"`
	Locations      []string                 `json:"locations"`
	Transports     []domain.TransportRecord `json:"transports"`
	CreatedAt      *time.Time               `json:"created_at,omitempty"`
	UpdatedAt      *time.Time               `json:"updated_at,omitempty"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ImportResult is the body of POST /imports.
type ImportResult struct {
	DryRun bool   `json:"dry_run"`
	Count  int    `json:"count"`
	Trips  []Trip `json:"trips"`
}

// tripToResponse maps a domain.Trip to its wire form. Timestamps are omitted
// for trips that were never stored (dry runs).
func tripToResponse(t domain.Trip) Trip {
	out := Trip{
		Id:             t.ID,
		Name:           t.Name,
		Location:       t.Location,
		StartDate:      toDate(t.StartDate),
		EndDate:        toDate(t.EndDate),
		Status:         string(t.Status),
		Icon:           t.Icon,
		DurationMode:   t.DurationMode,
		Participants:   orEmpty(t.Participants),
		Accommodations: orEmpty(t.Accommodations),
		Activities:     orEmpty(t.Activities),
		Locations:      orEmpty(t.Locations),
		Transports:     t.Transports,
	}
	if out.Transports == nil {
		out.Transports = []domain.TransportRecord{}
	}
	if !t.CreatedAt.IsZero() {
		created, updated := t.CreatedAt, t.UpdatedAt
		out.CreatedAt, out.UpdatedAt = &created, &updated
	}
	return out
}

func tripsToResponse(trips []domain.Trip) []Trip {
	out := make([]Trip, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	return out
}

// toDate parses a "2006-01-02" string; anything else becomes null.
func toDate(s string) *openapi_types.Date {
	t, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		return nil
	}
	return &openapi_types.Date{Time: t}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
