package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/fitcoach-app/coach-backend/internal/services"
)

type MeHandler struct {
  userService services.UserService
}

func NewMeHandler(userService services.UserService) *MeHandler {
  return &MeHandler{userService: userService}
}

func (mh *MeHandler) GetMe(c *gin.Context) {
  me, err := mh.userService.GetMe(c.Request.Context())
  if err != nil {
    writeError(c, err)
    return
  }
  c.JSON(http.StatusOK, me)
}
