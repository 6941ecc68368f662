package store

import (
	"context"
	"fmt"
	"time"

	"github.com/revisehub/revisehub/internal/models"
	"gorm.io/gorm"
)

// ReviewStore records completed revisions and aggregates per-user stats.
type ReviewStore struct {
	db *gorm.DB
}

// NewReviewStore constructs a ReviewStore.
func NewReviewStore(db *gorm.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// Record appends one review entry for a rated question.
func (s *ReviewStore) Record(ctx context.Context, userID, questionID uint64, confidence int, reviewedAt time.Time) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("review store: not initialized")
	}
	review := models.Review{
		UserID:     userID,
		QuestionID: questionID,
		Confidence: confidence,
		ReviewedAt: reviewedAt.UTC(),
	}
	if errCreate := s.db.WithContext(ctx).Create(&review).Error; errCreate != nil {
		return fmt.Errorf("review store: record: %w", errCreate)
	}
	return nil
}

// Stats summarizes a user's review history.
type Stats struct {
	Total        int64         `json:"total"`
	ByConfidence map[int]int64 `json:"by_confidence"`
}

// Stats returns the total review count and a per-confidence breakdown.
func (s *ReviewStore) Stats(ctx context.Context, userID uint64) (Stats, error) {
	if s == nil || s.db == nil {
		return Stats{}, fmt.Errorf("review store: not initialized")
	}

	type bucket struct {
		Confidence int
		Count      int64
	}
	var buckets []bucket
	if errGroup := s.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("confidence, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("confidence").
		Find(&buckets).Error; errGroup != nil {
		return Stats{}, fmt.Errorf("review store: stats: %w", errGroup)
	}

	stats := Stats{ByConfidence: make(map[int]int64, len(buckets))}
	for _, b := range buckets {
		stats.ByConfidence[b.Confidence] = b.Count
		stats.Total += b.Count
	}
	return stats, nil
}
