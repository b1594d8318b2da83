package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/types"
)

type MealLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, meal *types.MealLog) error

  // ListByUserID returns the caller's meals newest-first, optionally bounded
  // by an inclusive noted_at range.
  ListByUserID(ctx context.Context, tx *gorm.DB, userID string, from, to *time.Time) ([]types.MealLog, error)
}

type mealLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMealLogRepo(db *gorm.DB, baseLog *logger.Logger) MealLogRepo {
  return &mealLogRepo{db: db, log: baseLog.With("repo", "MealLogRepo")}
}

func (mlr *mealLogRepo) Create(ctx context.Context, tx *gorm.DB, meal *types.MealLog) error {
  transaction := tx
  if transaction == nil {
    transaction = mlr.db
  }
  if meal.ID == uuid.Nil {
    meal.ID = uuid.New()
  }
  if meal.NotedAt.IsZero() {
    meal.NotedAt = time.Now().UTC()
  }
  if err := transaction.WithContext(ctx).Create(meal).Error; err != nil {
    mlr.log.Error("failed to create meal log", "userID", meal.UserID, "error", err)
    return err
  }
  return nil
}

func (mlr *mealLogRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID string, from, to *time.Time) ([]types.MealLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = mlr.db
  }
  query := transaction.WithContext(ctx).Where("user_id = ?", userID)
  if from != nil {
    query = query.Where("noted_at >= ?", *from)
  }
  if to != nil {
    query = query.Where("noted_at <= ?", *to)
  }
  var meals []types.MealLog
  if err := query.Order("noted_at DESC").Find(&meals).Error; err != nil {
    mlr.log.Error("failed to list meal logs", "userID", userID, "error", err)
    return nil, err
  }
  return meals, nil
}
