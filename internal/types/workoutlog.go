package types

import (
  "time"

  "github.com/google/uuid"
)

type WorkoutLog struct {
  ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID        string      `gorm:"index;not null;column:user_id" json:"user_id"`
  Exercise      string      `gorm:"not null;column:exercise" json:"exercise"`
  Sets          int         `gorm:"not null;column:sets" json:"sets"`
  Reps          int         `gorm:"not null;column:reps" json:"reps"`
  Weight        float64     `gorm:"not null;column:weight" json:"weight"`
  Note          string      `gorm:"column:note" json:"note,omitempty"`

  PerformedAt   time.Time   `gorm:"not null;index;column:performed_at" json:"performed_at"`
}

func (WorkoutLog) TableName() string {
  return "workout_log"
}
