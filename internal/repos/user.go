package repos

import (
  "context"
  "errors"
  "time"

  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/types"
)

type UserRepo interface {
  // Upsert inserts the user row keyed by the external subject id, or
  // refreshes the email when the row already exists and a non-empty email
  // is supplied. Safe under concurrent calls for the same id.
  Upsert(ctx context.Context, tx *gorm.DB, user *types.User) error

  GetByID(ctx context.Context, tx *gorm.DB, userID string) (*types.User, error)
}

type userRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
  return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Upsert(ctx context.Context, tx *gorm.DB, user *types.User) error {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  now := time.Now().UTC()
  if user.CreatedAt.IsZero() {
    user.CreatedAt = now
  }
  if user.UpdatedAt.IsZero() {
    user.UpdatedAt = now
  }

  onConflict := clause.OnConflict{
    Columns:   []clause.Column{{Name: "id"}},
    DoNothing: true,
  }
  if user.Email != nil && *user.Email != "" {
    onConflict.DoNothing = false
    onConflict.DoUpdates = clause.Assignments(map[string]interface{}{
      "email":      *user.Email,
      "updated_at": now,
    })
  }
  if err := transaction.WithContext(ctx).Clauses(onConflict).Create(user).Error; err != nil {
    ur.log.Error("failed to upsert user", "userID", user.ID, "error", err)
    return err
  }
  return nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID string) (*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  var user types.User
  if err := transaction.WithContext(ctx).
    Where("id = ?", userID).
    First(&user).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apperrors.ErrNotFound
    }
    ur.log.Error("failed to get user by id", "userID", userID, "error", err)
    return nil, err
  }
  return &user, nil
}
