package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "gorm.io/gorm"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/repos"
  "github.com/fitcoach-app/coach-backend/internal/requestdata"
  "github.com/fitcoach-app/coach-backend/internal/types"
)

const (
  defaultWorkoutLimit = 100
  maxWorkoutLimit     = 200
)

type CreateWorkoutRequest struct {
  Exercise    string     `json:"exercise"`
  Sets        int        `json:"sets"`
  Reps        int        `json:"reps"`
  Weight      float64    `json:"weight"`
  Note        string     `json:"note,omitempty"`
  PerformedAt *time.Time `json:"performed_at,omitempty"`
}

type WorkoutService interface {
  LogWorkout(ctx context.Context, req CreateWorkoutRequest) (*types.WorkoutLog, error)
  ListWorkouts(ctx context.Context, limit int) ([]types.WorkoutLog, error)
}

type workoutService struct {
  db             *gorm.DB
  log            *logger.Logger
  workoutLogRepo repos.WorkoutLogRepo
}

func NewWorkoutService(db *gorm.DB, log *logger.Logger, workoutLogRepo repos.WorkoutLogRepo) WorkoutService {
  serviceLog := log.With("service", "WorkoutService")
  return &workoutService{db: db, log: serviceLog, workoutLogRepo: workoutLogRepo}
}

func (ws *workoutService) LogWorkout(ctx context.Context, req CreateWorkoutRequest) (*types.WorkoutLog, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    ws.log.Warn("Request Data is not set in context.")
    return nil, apperrors.ErrUnauthenticated
  }

  var violations []string
  if strings.TrimSpace(req.Exercise) == "" {
    violations = append(violations, "exercise must not be empty")
  }
  if req.Sets < 1 {
    violations = append(violations, "sets must be at least 1")
  }
  if req.Reps < 1 {
    violations = append(violations, "reps must be at least 1")
  }
  if req.Weight < 0 {
    violations = append(violations, "weight must be non-negative")
  }
  if len(violations) > 0 {
    return nil, &apperrors.ValidationError{Violations: violations}
  }

  workout := types.WorkoutLog{
    UserID:   rd.UserID,
    Exercise: strings.TrimSpace(req.Exercise),
    Sets:     req.Sets,
    Reps:     req.Reps,
    Weight:   req.Weight,
    Note:     strings.TrimSpace(req.Note),
  }
  if req.PerformedAt != nil {
    workout.PerformedAt = *req.PerformedAt
  }
  if err := ws.workoutLogRepo.Create(ctx, nil, &workout); err != nil {
    return nil, fmt.Errorf("failed to log workout: %w", err)
  }
  return &workout, nil
}

func (ws *workoutService) ListWorkouts(ctx context.Context, limit int) ([]types.WorkoutLog, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    ws.log.Warn("Request Data is not set in context.")
    return nil, apperrors.ErrUnauthenticated
  }
  if limit <= 0 {
    limit = defaultWorkoutLimit
  }
  if limit > maxWorkoutLimit {
    limit = maxWorkoutLimit
  }
  return ws.workoutLogRepo.ListByUserID(ctx, nil, rd.UserID, limit)
}
