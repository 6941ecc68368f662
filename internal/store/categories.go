// Package store implements the persistence adapters for categories,
// questions, settings, and review history. Every query is scoped to the
// owning user; callers supply the authenticated user ID.
package store

import (
	"context"
	"fmt"

	"github.com/revisehub/revisehub/internal/models"
	"gorm.io/gorm"
)

// CategoryStore persists question categories.
type CategoryStore struct {
	db *gorm.DB
}

// NewCategoryStore constructs a CategoryStore.
func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories owned by the user, oldest first.
func (s *CategoryStore) List(ctx context.Context, userID uint64) ([]models.Category, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("category store: not initialized")
	}
	var rows []models.Category
	if errFind := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("category store: list: %w", errFind)
	}
	return rows, nil
}

// NameToID builds the category name to id lookup used for resolving
// question batches. Later duplicates of a name win, matching insertion order.
func (s *CategoryStore) NameToID(ctx context.Context, userID uint64) (map[string]uint64, error) {
	rows, errList := s.List(ctx, userID)
	if errList != nil {
		return nil, errList
	}
	lookup := make(map[string]uint64, len(rows))
	for _, row := range rows {
		lookup[row.Name] = row.ID
	}
	return lookup, nil
}

// Create inserts a category attributed to the user.
func (s *CategoryStore) Create(ctx context.Context, userID uint64, name string) (models.Category, error) {
	if s == nil || s.db == nil {
		return models.Category{}, fmt.Errorf("category store: not initialized")
	}
	category := models.Category{
		UserID: userID,
		Name:   name,
	}
	if errCreate := s.db.WithContext(ctx).Create(&category).Error; errCreate != nil {
		return models.Category{}, fmt.Errorf("category store: create: %w", errCreate)
	}
	return category, nil
}

// Rename updates a category name on the user's row.
func (s *CategoryStore) Rename(ctx context.Context, userID, id uint64, name string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("category store: not initialized")
	}
	res := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	if res.Error != nil {
		return fmt.Errorf("category store: rename: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a category. Questions that still reference the category
// keep their category_id; there is no cascade and no reference check.
func (s *CategoryStore) Delete(ctx context.Context, userID, id uint64) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("category store: not initialized")
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Category{})
	if res.Error != nil {
		return fmt.Errorf("category store: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
