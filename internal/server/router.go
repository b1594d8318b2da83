package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/fitcoach-app/coach-backend/internal/handlers"
  "github.com/fitcoach-app/coach-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware *middleware.AuthMiddleware
  MeHandler      *handlers.MeHandler
  ChatHandler    *handlers.ChatHandler
  MealHandler    *handlers.MealHandler
  WorkoutHandler *handlers.WorkoutHandler
  CORSOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  //-----------------------------------------
  // Cors Setup
  //-----------------------------------------
  corsConfig := cors.Config{
    AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders: []string{"Authorization", "Content-Type", "X-Requested-With"},
  }
  if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
    corsConfig.AllowAllOrigins = true
  } else {
    corsConfig.AllowOrigins = cfg.CORSOrigins
    corsConfig.AllowCredentials = true
  }
  router.Use(cors.New(corsConfig))

  //-----------------------------------------
  // Health Routes
  //-----------------------------------------
  router.GET("/health", handlers.Health)

  //------------------------------------------
  // Protected Routes
  //------------------------------------------
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())

  //ME
  protected.GET("/me", cfg.MeHandler.GetMe)

  //Chat
  protected.GET("/chat/history", cfg.ChatHandler.GetHistory)
  protected.POST("/chat", cfg.ChatHandler.SendMessage)

  //Meals
  protected.GET("/meals", cfg.MealHandler.ListMeals)
  protected.POST("/meals", cfg.MealHandler.LogMeal)

  //Workouts
  protected.GET("/workouts", cfg.WorkoutHandler.ListWorkouts)
  protected.POST("/workouts", cfg.WorkoutHandler.LogWorkout)

  return router
}
