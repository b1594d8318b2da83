package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
)

// writeError maps the failure taxonomy onto status codes. Anything outside
// the taxonomy is an opaque server error.
func writeError(c *gin.Context, err error) {
  if ve, ok := apperrors.AsValidation(err); ok {
    c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "violations": ve.Violations})
    return
  }
  switch {
  case errors.Is(err, apperrors.ErrUnauthenticated):
    c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
  case errors.Is(err, apperrors.ErrNotFound):
    c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
  default:
    c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
  }
}
