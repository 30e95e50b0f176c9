package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/pkordes/itinerary/internal/flightlog"
	"github.com/pkordes/itinerary/internal/service"
)

// CreateImport handles POST /imports.
// The raw flight log is the request body. ?subject= is required; ?format=
// may be omitted when the Content-Type is text/csv or application/json.
// ?dry_run=true reconstructs trips without storing them.
func (s *Server) CreateImport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dryRun := false
	if v := q.Get("dry_run"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, codeInvalidParam, "dry_run must be a boolean")
			return
		}
		dryRun = b
	}

	format := q.Get("format")
	if format == "" {
		format = formatFromContentType(r.Header.Get("Content-Type"))
	}

	content, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, codeTooLarge, "flight log exceeds the upload limit")
			return
		}
		s.writeError(w, r, http.StatusBadRequest, codeInvalidParam, "could not read request body")
		return
	}

	trips, err := s.imports.Import(r.Context(), service.ImportRequest{
		Format:    format,
		SubjectID: q.Get("subject"),
		Content:   content,
		DryRun:    dryRun,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	status := http.StatusCreated
	if dryRun {
		status = http.StatusOK
	}
	s.writeJSON(w, r, status, ImportResult{
		DryRun: dryRun,
		Count:  len(trips),
		Trips:  tripsToResponse(trips),
	})
}

// formatFromContentType maps a request media type onto an import format.
// Unknown types yield "", which the service rejects.
func formatFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mt {
	case "text/csv":
		return flightlog.FormatCSV
	case "application/json":
		return flightlog.FormatJSON
	default:
		return ""
	}
}
