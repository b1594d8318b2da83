package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/services"
)

type WorkoutHandler struct {
  workoutService services.WorkoutService
}

func NewWorkoutHandler(workoutService services.WorkoutService) *WorkoutHandler {
  return &WorkoutHandler{workoutService: workoutService}
}

func (wh *WorkoutHandler) LogWorkout(c *gin.Context) {
  var req services.CreateWorkoutRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    writeError(c, apperrors.NewValidationError("body must be valid JSON"))
    return
  }
  workout, err := wh.workoutService.LogWorkout(c.Request.Context(), req)
  if err != nil {
    writeError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"data": workout})
}

func (wh *WorkoutHandler) ListWorkouts(c *gin.Context) {
  limit := 0
  if raw := c.Query("limit"); raw != "" {
    parsed, err := strconv.Atoi(raw)
    if err != nil || parsed < 1 {
      writeError(c, apperrors.NewValidationError("limit must be a positive integer"))
      return
    }
    limit = parsed
  }
  workouts, err := wh.workoutService.ListWorkouts(c.Request.Context(), limit)
  if err != nil {
    writeError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"data": workouts})
}
