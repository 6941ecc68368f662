package models

import "time"

// Setting holds the per-user revision plan. One row per user, created at
// sign-up and only ever replaced wholesale.
type Setting struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID       uint64       `gorm:"not null;uniqueIndex"` // Owning user ID, one row each.
	RevisionPlan RevisionPlan `gorm:"type:jsonb;not null"`  // Level-to-days mapping.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
