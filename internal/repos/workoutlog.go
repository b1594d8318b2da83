package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/types"
)

type WorkoutLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, workout *types.WorkoutLog) error

  // ListByUserID returns the caller's workouts newest-first, at most limit.
  ListByUserID(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]types.WorkoutLog, error)
}

type workoutLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWorkoutLogRepo(db *gorm.DB, baseLog *logger.Logger) WorkoutLogRepo {
  return &workoutLogRepo{db: db, log: baseLog.With("repo", "WorkoutLogRepo")}
}

func (wlr *workoutLogRepo) Create(ctx context.Context, tx *gorm.DB, workout *types.WorkoutLog) error {
  transaction := tx
  if transaction == nil {
    transaction = wlr.db
  }
  if workout.ID == uuid.Nil {
    workout.ID = uuid.New()
  }
  if workout.PerformedAt.IsZero() {
    workout.PerformedAt = time.Now().UTC()
  }
  if err := transaction.WithContext(ctx).Create(workout).Error; err != nil {
    wlr.log.Error("failed to create workout log", "userID", workout.UserID, "error", err)
    return err
  }
  return nil
}

func (wlr *workoutLogRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]types.WorkoutLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = wlr.db
  }
  var workouts []types.WorkoutLog
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("performed_at DESC").
    Limit(limit).
    Find(&workouts).Error; err != nil {
    wlr.log.Error("failed to list workout logs", "userID", userID, "error", err)
    return nil, err
  }
  return workouts, nil
}
