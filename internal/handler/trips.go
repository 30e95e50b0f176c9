package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
)

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page, ok := s.intParam(w, r, "page")
	if !ok {
		return
	}
	limit, ok := s.intParam(w, r, "limit")
	if !ok {
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.ListPaged(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	s.writeJSON(w, r, http.StatusOK, TripList{
		Data: tripsToResponse(trips),
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	s.writeJSON(w, r, http.StatusOK, tripToResponse(trip))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// idParam parses the {id} path segment. On failure it writes a 400 and
// reports false.
func (s *Server) idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, codeInvalidParam, "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// intParam parses an optional integer query parameter. An absent parameter
// yields nil; a malformed one writes a 400 and reports false.
func (s *Server) intParam(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, codeInvalidParam, name+" must be an integer")
		return nil, false
	}
	return &n, true
}
