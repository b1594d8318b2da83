package apperrors

import (
  "errors"
  "strings"
)

// The four failure classes the API distinguishes. Handlers map these to
// status codes; everything else is treated as an internal server error.
var (
  ErrUnauthenticated = errors.New("unauthenticated")
  ErrNotFound        = errors.New("not found")
  ErrUpstream        = errors.New("upstream failure")
)

// ValidationError carries every field violation found in a request body so
// the client can correct and resubmit in one round trip.
type ValidationError struct {
  Violations []string
}

func (e *ValidationError) Error() string {
  return "validation failed: " + strings.Join(e.Violations, "; ")
}

func NewValidationError(violations ...string) *ValidationError {
  return &ValidationError{Violations: violations}
}

func AsValidation(err error) (*ValidationError, bool) {
  var ve *ValidationError
  if errors.As(err, &ve) {
    return ve, true
  }
  return nil, false
}
