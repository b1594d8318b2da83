package services

import (
  "context"
  "fmt"

  "gorm.io/gorm"

  "github.com/fitcoach-app/coach-backend/internal/apperrors"
  "github.com/fitcoach-app/coach-backend/internal/auth"
  "github.com/fitcoach-app/coach-backend/internal/logger"
  "github.com/fitcoach-app/coach-backend/internal/repos"
  "github.com/fitcoach-app/coach-backend/internal/requestdata"
  "github.com/fitcoach-app/coach-backend/internal/types"
)

type UserService interface {
  // Provision makes sure a user row exists for the verified identity,
  // refreshing the stored email when the token carries a new one. Called
  // once per authenticated request.
  Provision(ctx context.Context, identity auth.Identity) error

  GetMe(ctx context.Context) (*types.User, error)
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) Provision(ctx context.Context, identity auth.Identity) error {
  if identity.UserID == "" {
    return fmt.Errorf("cannot provision a user without a subject id")
  }
  user := types.User{ID: identity.UserID}
  if identity.Email != "" {
    email := identity.Email
    user.Email = &email
  }
  if err := us.userRepo.Upsert(ctx, nil, &user); err != nil {
    us.log.Error("failed to provision user", "userID", identity.UserID, "error", err)
    return err
  }
  return nil
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == "" {
    us.log.Warn("Request Data is not set in context.")
    return nil, apperrors.ErrUnauthenticated
  }
  user, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
  if err != nil {
    return nil, err
  }
  return user, nil
}
