package main

import (
  "fmt"
  "os"
  "strings"
  "time"

  "github.com/joho/godotenv"

  "github.com/fitcoach-app/coach-backend/internal/auth"
  "github.com/fitcoach-app/coach-backend/internal/db"
  "github.com/fitcoach-app/coach-backend/internal/handlers"
  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/middleware"
  "github.com/fitcoach-app/coach-backend/internal/repos"
  "github.com/fitcoach-app/coach-backend/internal/server"
  "github.com/fitcoach-app/coach-backend/internal/services"
  "github.com/fitcoach-app/coach-backend/internal/utils"
)

func main() {
  // Env file first so everything below sees it
  _ = godotenv.Load()

  // Logger Setup
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Environment Variables
  log.Info("Attempting to load environment variables for Main now...")
  jwksURL := utils.GetEnv("AUTH_JWKS_URL", "", log)
  issuer := utils.GetEnv("AUTH_ISSUER", "", log)
  jwksCacheTTL := utils.GetEnvAsInt("AUTH_JWKS_CACHE_TTL_SECONDS", 900, log)
  corsOrigins := utils.GetEnv("CORS_ORIGINS", "*", log)
  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Environment variables loaded for Main :)")

  // Postgres Setup
  log.Info("Setting Up Postgres from Main now...")
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("DB init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()
  log.Info("Postgres Setup From Main Successful :)")

  // Repositories Setup
  log.Info("Setting Up Repositories from Main now...")
  userRepo := repos.NewUserRepo(thePG, log)
  messageRepo := repos.NewMessageRepo(thePG, log)
  mealLogRepo := repos.NewMealLogRepo(thePG, log)
  workoutLogRepo := repos.NewWorkoutLogRepo(thePG, log)
  log.Info("Repositories Set Up From Main Successful :)")

  // Token Verifier Setup
  log.Info("Setting Up Token Verifier from Main now...")
  verifier, err := auth.NewJWKSVerifier(log, jwksURL, issuer, time.Duration(jwksCacheTTL)*time.Second)
  if err != nil {
    log.Error("Fatal error: Cannot init Token Verifier", "error", err)
    os.Exit(1)
  }
  log.Info("Token Verifier Set Up From Main Successful :)")

  // Services Setup
  log.Info("Setting up Services from Main now...")
  completionClient, err := services.NewOpenAIService(log)
  if err != nil {
    log.Error("Fatal error: Cannot init OpenAIService", "error", err)
    os.Exit(1)
  }
  userService := services.NewUserService(thePG, log, userRepo)
  chatService := services.NewChatService(thePG, log, messageRepo, completionClient)
  mealService := services.NewMealService(thePG, log, mealLogRepo)
  workoutService := services.NewWorkoutService(thePG, log, workoutLogRepo)
  log.Info("Services Set Up From Main Successful :)")

  // Handler Setup
  log.Info("Setting Up Handlers from Main now...")
  meHandler := handlers.NewMeHandler(userService)
  chatHandler := handlers.NewChatHandler(chatService)
  mealHandler := handlers.NewMealHandler(mealService)
  workoutHandler := handlers.NewWorkoutHandler(workoutService)
  log.Info("Handlers Set Up From Main Successful :)")

  // MiddleWare Setup
  log.Info("Setting Up Middleware from Main now...")
  authMiddleware := middleware.NewAuthMiddleware(log, verifier, userService)
  log.Info("Middleware Set Up From Main Successful :)")

  // Router Setup
  log.Info("Setting Up Router from Main now...")
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware: authMiddleware,
    MeHandler:      meHandler,
    ChatHandler:    chatHandler,
    MealHandler:    mealHandler,
    WorkoutHandler: workoutHandler,
    CORSOrigins:    splitOrigins(corsOrigins),
  })
  log.Info("Router Set Up From Main Successful :)")

  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}

func splitOrigins(raw string) []string {
  parts := strings.Split(raw, ",")
  origins := make([]string, 0, len(parts))
  for _, p := range parts {
    if trimmed := strings.TrimSpace(p); trimmed != "" {
      origins = append(origins, trimmed)
    }
  }
  return origins
}
