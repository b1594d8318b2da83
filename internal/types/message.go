package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  MessageRoleUser      = "user"
  MessageRoleAssistant = "assistant"
)

// Message is one chat turn. Rows are append-only: never updated, never
// deleted, always read back ordered by CreatedAt.
type Message struct {
  ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      string        `gorm:"index;not null;column:user_id" json:"user_id"`
  Role        string        `gorm:"not null;column:role" json:"role"`
  Content     string        `gorm:"not null;column:content" json:"content"`

  CreatedAt   time.Time     `gorm:"not null;index" json:"created_at"`
}

func (Message) TableName() string {
  return "message"
}
