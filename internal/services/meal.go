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

type CreateMealRequest struct {
  Name     string     `json:"name"`
  Calories int        `json:"calories"`
  ProteinG int        `json:"protein_g"`
  CarbsG   int        `json:"carbs_g"`
  FatG     int        `json:"fat_g"`
  NotedAt  *time.Time `json:"noted_at,omitempty"`
}

// MealTotals is derived at response time from the returned rows. Never
// persisted.
type MealTotals struct {
  Calories int `json:"calories"`
  ProteinG int `json:"protein_g"`
  CarbsG   int `json:"carbs_g"`
  FatG     int `json:"fat_g"`
}

type MealService interface {
  LogMeal(ctx context.Context, req CreateMealRequest) (*types.MealLog, error)
  ListMeals(ctx context.Context, from, to *time.Time) ([]types.MealLog, MealTotals, error)
}

type mealService struct {
  db          *gorm.DB
  log         *logger.Logger
  mealLogRepo repos.MealLogRepo
}

func NewMealService(db *gorm.DB, log *logger.Logger, mealLogRepo repos.MealLogRepo) MealService {
  serviceLog := log.With("service", "MealService")
  return &mealService{db: db, log: serviceLog, mealLogRepo: mealLogRepo}
}

func (ms *mealService) LogMeal(ctx context.Context, req CreateMealRequest) (*types.MealLog, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    ms.log.Warn("Request Data is not set in context.")
    return nil, apperrors.ErrUnauthenticated
  }

  var violations []string
  if strings.TrimSpace(req.Name) == "" {
    violations = append(violations, "name must not be empty")
  }
  if req.Calories < 0 {
    violations = append(violations, "calories must be non-negative")
  }
  if req.ProteinG < 0 {
    violations = append(violations, "protein_g must be non-negative")
  }
  if req.CarbsG < 0 {
    violations = append(violations, "carbs_g must be non-negative")
  }
  if req.FatG < 0 {
    violations = append(violations, "fat_g must be non-negative")
  }
  if len(violations) > 0 {
    return nil, &apperrors.ValidationError{Violations: violations}
  }

  meal := types.MealLog{
    UserID:   rd.UserID,
    Name:     strings.TrimSpace(req.Name),
    Calories: req.Calories,
    ProteinG: req.ProteinG,
    CarbsG:   req.CarbsG,
    FatG:     req.FatG,
  }
  if req.NotedAt != nil {
    meal.NotedAt = *req.NotedAt
  }
  if err := ms.mealLogRepo.Create(ctx, nil, &meal); err != nil {
    return nil, fmt.Errorf("failed to log meal: %w", err)
  }
  return &meal, nil
}

func (ms *mealService) ListMeals(ctx context.Context, from, to *time.Time) ([]types.MealLog, MealTotals, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    ms.log.Warn("Request Data is not set in context.")
    return nil, MealTotals{}, apperrors.ErrUnauthenticated
  }
  meals, err := ms.mealLogRepo.ListByUserID(ctx, nil, rd.UserID, from, to)
  if err != nil {
    return nil, MealTotals{}, err
  }
  var totals MealTotals
  for _, meal := range meals {
    totals.Calories += meal.Calories
    totals.ProteinG += meal.ProteinG
    totals.CarbsG += meal.CarbsG
    totals.FatG += meal.FatG
  }
  return meals, totals, nil
}
