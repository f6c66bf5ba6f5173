package models

import "time"

// DefaultTimezone is used whenever a user has not set (or has broken)
// their timezone preference.
const DefaultTimezone = "America/New_York"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	DisplayName  string
	Timezone     string    `gorm:"not null;default:''"`
	CreatedAt    time.Time `gorm:"not null"`
}
