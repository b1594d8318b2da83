package types

import (
  "time"

  "github.com/google/uuid"
)

type MealLog struct {
  ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      string        `gorm:"index;not null;column:user_id" json:"user_id"`
  Name        string        `gorm:"not null;column:name" json:"name"`
  Calories    int           `gorm:"not null;column:calories" json:"calories"`
  ProteinG    int           `gorm:"not null;column:protein_g" json:"protein_g"`
  CarbsG      int           `gorm:"not null;column:carbs_g" json:"carbs_g"`
  FatG        int           `gorm:"not null;column:fat_g" json:"fat_g"`

  // NotedAt defaults to insertion time when the client does not supply one.
  NotedAt     time.Time     `gorm:"not null;index;column:noted_at" json:"noted_at"`
}

func (MealLog) TableName() string {
  return "meal_log"
}
