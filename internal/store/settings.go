package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/revisehub/revisehub/internal/models"
	defaults "github.com/revisehub/revisehub/internal/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsStore persists the per-user revision plan.
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore constructs a SettingsStore.
func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the user's revision plan, or the default plan when the user
// has no settings row yet.
func (s *SettingsStore) Get(ctx context.Context, userID uint64) (models.RevisionPlan, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("settings store: not initialized")
	}
	var setting models.Setting
	errFind := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&setting).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return defaults.DefaultRevisionPlan(), nil
		}
		return nil, fmt.Errorf("settings store: get: %w", errFind)
	}
	if len(setting.RevisionPlan) == 0 {
		return defaults.DefaultRevisionPlan(), nil
	}
	return setting.RevisionPlan, nil
}

// Set upserts the full five-key plan for the user. Partial updates are not
// supported at this boundary; the plan is always replaced wholesale.
func (s *SettingsStore) Set(ctx context.Context, userID uint64, plan models.RevisionPlan) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("settings store: not initialized")
	}
	if errValidate := plan.Validate(); errValidate != nil {
		return errValidate
	}

	now := time.Now().UTC()
	record := models.Setting{
		UserID:       userID,
		RevisionPlan: plan,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if errUpsert := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"revision_plan", "updated_at"}),
	}).Create(&record).Error; errUpsert != nil {
		return fmt.Errorf("settings store: upsert: %w", errUpsert)
	}
	return nil
}
