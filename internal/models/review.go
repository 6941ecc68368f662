package models

import "time"

// Review records one completed revision of a question.
type Review struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID     uint64 `gorm:"not null;index"`        // Owning user ID.
	QuestionID uint64 `gorm:"not null;index"`        // Reviewed question ID.
	Confidence int    `gorm:"type:smallint;not null"` // Self-rating 1-5 given at review time.

	ReviewedAt time.Time `gorm:"not null"` // When the rating was submitted.
}
