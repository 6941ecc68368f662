package models

import "time"

// Question represents a study question tracked for spaced revision.
//
// NextRevisionDate is kept as an ISO YYYY-MM-DD string so that due-date
// ordering and comparisons stay plain lexicographic across dialects.
type Question struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID     uint64 `gorm:"not null;index"`     // Owning user ID.
	CategoryID uint64 `gorm:"not null;index"`     // Referenced category ID.
	Title      string `gorm:"type:text;not null"` // Question title.

	Description string     `gorm:"type:text"`          // Optional long description.
	Topic       string     `gorm:"type:text;not null"` // Topic label used for filtering.
	Tags        StringList `gorm:"type:jsonb"`         // Free-form tag list.
	Link        string     `gorm:"type:text"`          // Optional external link.

	NextRevisionDate string `gorm:"type:varchar(10);not null;index"`        // Next due date, YYYY-MM-DD.
	ConfidenceLevel  *int   `gorm:"type:smallint"`                          // Last self-rating 1-5, nil when never rated.
	RevisionStep     string `gorm:"type:varchar(4);not null;default:'R1'"` // Revision-cycle token R1..R5.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
