package handler

import (
	"net/http"
	"strings"

	"github.com/pkordes/itinerary/internal/flightlog"
)

// GetExport handles GET /export.
// It returns the flight legs of every stored trip as a flight log.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = flightlog.FormatJSON
	}

	body, err := s.export.Export(r.Context(), format)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	contentType := "application/json"
	if format == flightlog.FormatCSV {
		contentType = "text/csv; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="flights.`+format+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
