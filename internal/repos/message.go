package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/types"
)

type MessageRepo interface {
  // Create appends one turn. Messages are never updated or deleted.
  Create(ctx context.Context, tx *gorm.DB, msg *types.Message) error

  // GetRecentByUserID returns the caller's most recent turns, at most limit,
  // reordered oldest-first so they can feed a completion call directly.
  GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]types.Message, error)

  // GetHistoryByUserID returns the caller's turns in ascending creation
  // order, capped at limit.
  GetHistoryByUserID(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]types.Message, error)
}

type messageRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, baseLog *logger.Logger) MessageRepo {
  return &messageRepo{db: db, log: baseLog.With("repo", "MessageRepo")}
}

func (mr *messageRepo) Create(ctx context.Context, tx *gorm.DB, msg *types.Message) error {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  if msg.ID == uuid.Nil {
    msg.ID = uuid.New()
  }
  if msg.CreatedAt.IsZero() {
    msg.CreatedAt = time.Now().UTC()
  }
  if err := transaction.WithContext(ctx).Create(msg).Error; err != nil {
    mr.log.Error("failed to create message", "userID", msg.UserID, "role", msg.Role, "error", err)
    return err
  }
  return nil
}

func (mr *messageRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]types.Message, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  var msgs []types.Message
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Limit(limit).
    Find(&msgs).Error; err != nil {
    mr.log.Error("failed to get recent messages", "userID", userID, "error", err)
    return nil, err
  }
  // Flip newest-first to oldest-first.
  for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
    msgs[i], msgs[j] = msgs[j], msgs[i]
  }
  return msgs, nil
}

func (mr *messageRepo) GetHistoryByUserID(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]types.Message, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  var msgs []types.Message
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at ASC").
    Limit(limit).
    Find(&msgs).Error; err != nil {
    mr.log.Error("failed to get message history", "userID", userID, "error", err)
    return nil, err
  }
  return msgs, nil
}
