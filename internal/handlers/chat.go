package handlers

import (
  "net/http"
  "time"

  "github.com/gin-gonic/gin"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/services"
)

type ChatHandler struct {
  chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
  return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) SendMessage(c *gin.Context) {
  var req struct {
    Text string `json:"text"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    writeError(c, apperrors.NewValidationError("body must be valid JSON with a text field"))
    return
  }
  reply, err := ch.chatService.SendMessage(c.Request.Context(), req.Text)
  if err != nil {
    writeError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type historyEntry struct {
  Role      string    `json:"role"`
  Content   string    `json:"content"`
  CreatedAt time.Time `json:"created_at"`
}

func (ch *ChatHandler) GetHistory(c *gin.Context) {
  msgs, err := ch.chatService.GetHistory(c.Request.Context())
  if err != nil {
    writeError(c, err)
    return
  }
  history := make([]historyEntry, 0, len(msgs))
  for _, msg := range msgs {
    history = append(history, historyEntry{Role: msg.Role, Content: msg.Content, CreatedAt: msg.CreatedAt})
  }
  c.JSON(http.StatusOK, history)
}
