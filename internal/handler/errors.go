package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/itinerary/internal/domain"
)

// ErrorDetail is the machine-readable code plus a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Error codes.
const (
	codeParse        = "parse_error"
	codeValidation   = "validation_error"
	codeInvalidParam = "invalid_parameter"
	codeNotFound     = "not_found"
	codeTooLarge     = "payload_too_large"
	codeInternal     = "internal_error"
)

// writeError writes an ErrorResponse with the given status.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	s.writeJSON(w, r, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service error onto its HTTP status and body.
// notFound is the message used for domain.ErrNotFound, since only the handler
// knows what was being looked up.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var pe *domain.ParseError
	switch {
	case errors.As(err, &pe):
		s.writeError(w, r, http.StatusBadRequest, codeParse, pe.Error())
	case errors.Is(err, domain.ErrValidation):
		s.writeError(w, r, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, codeNotFound, notFound)
	default:
		s.logger.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		s.writeError(w, r, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "service.ImportService.Import: validation error: subject is required" → "subject is required"
func unwrapMessage(err error) string {
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
