package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. unknown import format, missing subject id).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrParse is matched by every *ParseError. It marks a structural failure of an
// import document (invalid JSON, no header row): the whole import is rejected.
// Handlers should map this to HTTP 400.
var ErrParse = errors.New("parse error")

// ParseError describes why an import document could not be read at all.
// Per-record defects never produce a ParseError; those records are dropped.
type ParseError struct {
	// Format is the import format being read ("csv" or "json").
	Format string
	// Reason is a short human-readable description.
	Reason string
	// Err is the underlying decoder error, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Format, ErrParse, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Format, ErrParse, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports true for ErrParse so callers can use errors.Is without a type switch.
func (e *ParseError) Is(target error) bool { return target == ErrParse }
