package types

import (
  "time"
)

// User is keyed by the subject identifier issued by the external auth
// provider, not by a locally generated uuid. Rows are created on first
// authenticated request and never deleted.
type User struct {
  ID          string        `gorm:"primaryKey;column:id" json:"id"`
  Email       *string       `gorm:"column:email" json:"email,omitempty"`

  CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time     `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
