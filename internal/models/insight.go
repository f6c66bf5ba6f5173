package models

import "time"

// Insight is the AI-written opinion derived from one completed DailyLog.
// Deleting the log removes its insight as well.
type Insight struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"not null;index"`
	DailyLogID  uint `gorm:"not null;uniqueIndex"`
	Content     string
	GeneratedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
}
