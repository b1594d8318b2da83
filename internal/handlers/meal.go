package handlers

import (
  "fmt"
  "net/http"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/services"
)

type MealHandler struct {
  mealService services.MealService
}

func NewMealHandler(mealService services.MealService) *MealHandler {
  return &MealHandler{mealService: mealService}
}

func (mh *MealHandler) LogMeal(c *gin.Context) {
  var req services.CreateMealRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    writeError(c, apperrors.NewValidationError("body must be valid JSON"))
    return
  }
  meal, err := mh.mealService.LogMeal(c.Request.Context(), req)
  if err != nil {
    writeError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"data": meal})
}

func (mh *MealHandler) ListMeals(c *gin.Context) {
  from, err := parseTimeBound(c.Query("from"), false)
  if err != nil {
    writeError(c, apperrors.NewValidationError(fmt.Sprintf("from: %v", err)))
    return
  }
  to, err := parseTimeBound(c.Query("to"), true)
  if err != nil {
    writeError(c, apperrors.NewValidationError(fmt.Sprintf("to: %v", err)))
    return
  }
  meals, totals, err := mh.mealService.ListMeals(c.Request.Context(), from, to)
  if err != nil {
    writeError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"data": meals, "totals": totals})
}

// parseTimeBound accepts RFC3339 or a bare date. A bare date used as the
// upper bound covers the whole day, keeping the range inclusive.
func parseTimeBound(value string, upper bool) (*time.Time, error) {
  if value == "" {
    return nil, nil
  }
  if t, err := time.Parse(time.RFC3339, value); err == nil {
    return &t, nil
  }
  t, err := time.Parse("2006-01-02", value)
  if err != nil {
    return nil, fmt.Errorf("must be RFC3339 or YYYY-MM-DD")
  }
  if upper {
    t = t.Add(24*time.Hour - time.Nanosecond)
  }
  return &t, nil
}
