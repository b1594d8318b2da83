package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"

  "github.com/fitcoach-app/coach-backend/internal/auth"
  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/requestdata"
  "github.com/fitcoach-app/coach-backend/internal/services"
)

type AuthMiddleware struct {
  log         *logger.Logger
  verifier    auth.TokenVerifier
  userService services.UserService
}

func NewAuthMiddleware(log *logger.Logger, verifier auth.TokenVerifier, userService services.UserService) *AuthMiddleware {
  middlewareLog := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLog, verifier: verifier, userService: userService}
}

// RequireAuth verifies the bearer credential, provisions the user row, and
// attaches the verified identity to the request context. The rejection body
// is uniform on purpose: callers never learn why verification failed.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractBearerToken(c)
    identity, err := am.verifier.Verify(c.Request.Context(), tokenString)
    if err != nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
      return
    }
    if err := am.userService.Provision(c.Request.Context(), identity); err != nil {
      am.log.Error("failed to provision user for request", "userID", identity.UserID, "error", err)
      c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
      return
    }
    ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
      UserID: identity.UserID,
      Email:  identity.Email,
    })
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}

func extractBearerToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return ""
}
