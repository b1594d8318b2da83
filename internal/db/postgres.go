package db

import (
  "fmt"
  "time"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/types"
  "github.com/fitcoach-app/coach-backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  //1) Get and Set Environment Variables
  log.Info("Attempting to load environment variables for Postgres now...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "fitcoach", log)
  postgresSSLMode := utils.GetEnv("POSTGRES_SSLMODE", "disable", log)
  maxOpenConns := utils.GetEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 10, log)
  maxIdleConns := utils.GetEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5, log)
  connMaxLifetime := utils.GetEnvAsInt("POSTGRES_CONN_MAX_LIFETIME_SECONDS", 1800, log)
  log.Info("Environment variables loaded for Postgres :)")

  //2) Construct DSN From Environment Variables
  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName, postgresSSLMode)

  //3) Attempt DB Connection
  log.Info("Attempting to connect to Postgres DB now...")
  gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres DB", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres DB: %w", err)
  }
  log.Info("Successfully Connected to Postgres DB :)")

  //4) Configure the underlying connection pool
  sqlDB, err := gdb.DB()
  if err != nil {
    log.Error("Failed to get underlying sql.DB from GORM", "error", err)
    return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
  }
  sqlDB.SetMaxOpenConns(maxOpenConns)
  sqlDB.SetMaxIdleConns(maxIdleConns)
  sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

  return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Starting AutoMigrateAll for all GORM models now...")

  err := s.db.AutoMigrate(
    &types.User{},
    &types.Message{},
    &types.MealLog{},
    &types.WorkoutLog{},
  )
  if err != nil {
    s.log.Error("AutoMigrateAll failed for Base Tables :(", "error", err)
    return err
  }
  s.log.Info("AutoMigrateAll completed successfully for Base Tables :)")

  s.log.Info("Configuring Foreign Key Relationships for Base Tables now...")
  // -- Message.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "message"
      DROP CONSTRAINT IF EXISTS "fk_message_user_id",
      ADD CONSTRAINT "fk_message_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_message_user_id: %w", err)
  }
  // -- MealLog.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "meal_log"
      DROP CONSTRAINT IF EXISTS "fk_meal_log_user_id",
      ADD CONSTRAINT "fk_meal_log_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_meal_log_user_id: %w", err)
  }
  // -- WorkoutLog.user_id => user.id (ON DELETE CASCADE)
  if err := s.db.Exec(`
      ALTER TABLE "workout_log"
      DROP CONSTRAINT IF EXISTS "fk_workout_log_user_id",
      ADD CONSTRAINT "fk_workout_log_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "user"("id")
      ON DELETE CASCADE
  `).Error; err != nil {
    return fmt.Errorf("failed to add fk_workout_log_user_id: %w", err)
  }
  s.log.Info("Successfully Added Foreign Key Relationships to Base Tables :)")

  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
