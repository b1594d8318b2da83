package services

import (
  "context"
  "strings"

  "gorm.io/gorm"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/repos"
  "github.com/fitcoach-app/coach-backend/internal/requestdata"
  "github.com/fitcoach-app/coach-backend/internal/types"
)

// CoachSystemPrompt is the fixed persona prepended to every completion call.
// Configuration data, not logic: change it here without touching the flow.
const CoachSystemPrompt = "You are 'Fit AI Coach'—concise, friendly, injury-aware. Use simple progressions and macros in grams."

// FallbackReply is returned to the caller when the completion provider fails
// or produces nothing. It is never written to history.
const FallbackReply = "Sorry, I couldn't generate a reply."

const (
  // historyLimit caps the history read endpoint.
  historyLimit = 50
  // contextWindow caps how many prior turns feed the completion call.
  contextWindow = 20
)

type ChatService interface {
  // SendMessage persists the user turn, assembles the bounded conversation
  // window, and asks the completion provider for a reply. The user turn is
  // stored before the provider is called, so history survives provider
  // failure.
  SendMessage(ctx context.Context, text string) (string, error)

  // GetHistory returns the caller's turns oldest-first, capped at the
  // documented maximum. Read-only.
  GetHistory(ctx context.Context) ([]types.Message, error)
}

type chatService struct {
  db          *gorm.DB
  log         *logger.Logger
  messageRepo repos.MessageRepo
  completion  CompletionClient
}

func NewChatService(db *gorm.DB, log *logger.Logger, messageRepo repos.MessageRepo, completion CompletionClient) ChatService {
  serviceLog := log.With("service", "ChatService")
  return &chatService{db: db, log: serviceLog, messageRepo: messageRepo, completion: completion}
}

func (cs *chatService) SendMessage(ctx context.Context, text string) (string, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    cs.log.Warn("Request Data is not set in context.")
    return "", apperrors.ErrUnauthenticated
  }
  text = strings.TrimSpace(text)
  if text == "" {
    return "", apperrors.NewValidationError("text must not be empty")
  }

  // Persist the user turn before anything can fail downstream.
  userTurn := types.Message{
    UserID:  rd.UserID,
    Role:    types.MessageRoleUser,
    Content: text,
  }
  if err := cs.messageRepo.Create(ctx, nil, &userTurn); err != nil {
    return "", err
  }

  window, err := cs.messageRepo.GetRecentByUserID(ctx, nil, rd.UserID, contextWindow)
  if err != nil {
    return "", err
  }
  turns := make([]ChatTurn, 0, len(window)+1)
  turns = append(turns, ChatTurn{Role: "system", Content: CoachSystemPrompt})
  for _, msg := range window {
    turns = append(turns, ChatTurn{Role: msg.Role, Content: msg.Content})
  }

  reply, err := cs.completion.Complete(ctx, turns)
  if err != nil {
    // The user turn stays; the placeholder reply does not pollute history.
    cs.log.Warn("completion failed, returning fallback reply", "userID", rd.UserID, "error", err)
    return FallbackReply, nil
  }
  reply = strings.TrimSpace(reply)
  if reply == "" {
    cs.log.Warn("completion returned empty text, returning fallback reply", "userID", rd.UserID)
    return FallbackReply, nil
  }

  assistantTurn := types.Message{
    UserID:  rd.UserID,
    Role:    types.MessageRoleAssistant,
    Content: reply,
  }
  if err := cs.messageRepo.Create(ctx, nil, &assistantTurn); err != nil {
    // The reply was generated; losing the stored copy is the lesser failure.
    cs.log.Warn("failed to persist assistant turn", "userID", rd.UserID, "error", err)
  }
  return reply, nil
}

func (cs *chatService) GetHistory(ctx context.Context) ([]types.Message, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    cs.log.Warn("Request Data is not set in context.")
    return nil, apperrors.ErrUnauthenticated
  }
  return cs.messageRepo.GetHistoryByUserID(ctx, nil, rd.UserID, historyLimit)
}
