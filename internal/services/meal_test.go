package services

import (
  "context"
  "testing"
  "time"

  "github.com/DATA-DOG/go-sqlmock"
  "github.com/google/uuid"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/repos"
  "github.com/fitcoach-app/coach-backend/internal/requestdata"
)

func mealCtx(userID string) context.Context {
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

func TestLogMealCollectsAllViolations(t *testing.T) {
  gdb, mock := newMockDB(t)
  log := newTestLogger(t)
  svc := NewMealService(gdb, log, repos.NewMealLogRepo(gdb, log))

  _, err := svc.LogMeal(mealCtx("user-a"), CreateMealRequest{
    Name:     "  ",
    Calories: -1,
    ProteinG: -2,
    CarbsG:   -3,
    FatG:     -4,
  })
  require.Error(t, err)
  ve, ok := apperrors.AsValidation(err)
  require.True(t, ok, "expected a validation error, got %v", err)
  assert.Len(t, ve.Violations, 5)
  assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogMealPersistsAndReturnsServerFields(t *testing.T) {
  gdb, mock := newMockDB(t)
  log := newTestLogger(t)
  svc := NewMealService(gdb, log, repos.NewMealLogRepo(gdb, log))

  mock.ExpectBegin()
  mock.ExpectExec(`INSERT INTO "meal_log"`).
    WillReturnResult(sqlmock.NewResult(0, 1))
  mock.ExpectCommit()

  meal, err := svc.LogMeal(mealCtx("user-a"), CreateMealRequest{
    Name:     "Oatmeal",
    Calories: 300,
    ProteinG: 10,
    CarbsG:   50,
    FatG:     5,
  })
  require.NoError(t, err)
  assert.Equal(t, "user-a", meal.UserID)
  assert.Equal(t, "Oatmeal", meal.Name)
  assert.NotEqual(t, uuid.Nil, meal.ID)
  assert.False(t, meal.NotedAt.IsZero())
  assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMealsSumsTotals(t *testing.T) {
  gdb, mock := newMockDB(t)
  log := newTestLogger(t)
  svc := NewMealService(gdb, log, repos.NewMealLogRepo(gdb, log))

  now := time.Now()
  rows := sqlmock.NewRows([]string{"id", "user_id", "name", "calories", "protein_g", "carbs_g", "fat_g", "noted_at"}).
    AddRow(uuid.New().String(), "user-a", "Dinner", 700, 40, 60, 25, now).
    AddRow(uuid.New().String(), "user-a", "Oatmeal", 300, 10, 50, 5, now.Add(-8*time.Hour))
  mock.ExpectQuery(`SELECT \* FROM "meal_log"`).
    WithArgs("user-a").
    WillReturnRows(rows)

  meals, totals, err := svc.ListMeals(mealCtx("user-a"), nil, nil)
  require.NoError(t, err)
  require.Len(t, meals, 2)
  assert.Equal(t, 1000, totals.Calories)
  assert.Equal(t, 50, totals.ProteinG)
  assert.Equal(t, 110, totals.CarbsG)
  assert.Equal(t, 30, totals.FatG)
  assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMealsEmptySetHasZeroTotals(t *testing.T) {
  gdb, mock := newMockDB(t)
  log := newTestLogger(t)
  svc := NewMealService(gdb, log, repos.NewMealLogRepo(gdb, log))

  mock.ExpectQuery(`SELECT \* FROM "meal_log"`).
    WithArgs("user-a").
    WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "calories", "protein_g", "carbs_g", "fat_g", "noted_at"}))

  meals, totals, err := svc.ListMeals(mealCtx("user-a"), nil, nil)
  require.NoError(t, err)
  assert.Empty(t, meals)
  assert.Equal(t, MealTotals{}, totals)
}

func TestListMealsAppliesInclusiveDateRange(t *testing.T) {
  gdb, mock := newMockDB(t)
  log := newTestLogger(t)
  svc := NewMealService(gdb, log, repos.NewMealLogRepo(gdb, log))

  from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
  to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
  mock.ExpectQuery(`SELECT \* FROM "meal_log"`).
    WithArgs("user-a", from, to).
    WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "calories", "protein_g", "carbs_g", "fat_g", "noted_at"}))

  _, _, err := svc.ListMeals(mealCtx("user-a"), &from, &to)
  require.NoError(t, err)
  assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMealsRequiresIdentity(t *testing.T) {
  gdb, _ := newMockDB(t)
  log := newTestLogger(t)
  svc := NewMealService(gdb, log, repos.NewMealLogRepo(gdb, log))

  _, _, err := svc.ListMeals(context.Background(), nil, nil)
  assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
