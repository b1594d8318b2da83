package services

import (
  "testing"

  "github.com/DATA-DOG/go-sqlmock"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/fitcoach-app/coach-backend/internal/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("failed to init test logger: %v", err)
  }
  return log
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
  t.Helper()
  sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
  if err != nil {
    t.Fatalf("failed to open sqlmock: %v", err)
  }
  t.Cleanup(func() { sqlDB.Close() })
  gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
  if err != nil {
    t.Fatalf("failed to open gorm over sqlmock: %v", err)
  }
  return gdb, mock
}
