package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dbutil "github.com/revisehub/revisehub/internal/db"
	"github.com/revisehub/revisehub/internal/models"
	"github.com/revisehub/revisehub/internal/revision"
	"gorm.io/gorm"
)

// QuestionFilters narrows a question listing. Zero values mean no filter.
type QuestionFilters struct {
	CategoryID uint64 // Exact match on category id.
	Topic      string // Case-insensitive substring match on topic.
	Tag        string // Membership match against the tag list.
}

// NewQuestion is one row of a batch insert, with the category referenced by
// name as the add dialog supplies it.
type NewQuestion struct {
	Title       string   `json:"title"`
	Topic       string   `json:"topic"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
}

// ErrInvalidQuestion marks batch rows rejected by validation.
var ErrInvalidQuestion = errors.New("invalid question")

// CategoryNotFoundError rejects a batch whose row names an unknown category.
type CategoryNotFoundError struct {
	Name string
}

func (e *CategoryNotFoundError) Error() string {
	return fmt.Sprintf("category %q does not exist", e.Name)
}

// QuestionStore persists questions.
type QuestionStore struct {
	db *gorm.DB
}

// NewQuestionStore constructs a QuestionStore.
func NewQuestionStore(db *gorm.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

// List returns the user's questions matching the filters, ordered by next
// due date ascending.
func (s *QuestionStore) List(ctx context.Context, userID uint64, filters QuestionFilters) ([]models.Question, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("question store: not initialized")
	}

	q := s.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("user_id = ?", userID)

	if filters.CategoryID != 0 {
		q = q.Where("category_id = ?", filters.CategoryID)
	}
	if topic := strings.TrimSpace(filters.Topic); topic != "" {
		pattern := dbutil.NormalizeLikePattern(s.db, "%"+topic+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(s.db, "topic"), pattern)
	}
	if tag := strings.TrimSpace(filters.Tag); tag != "" {
		q = q.Where(dbutil.JSONArrayContainsExpr(s.db, "tags"), dbutil.JSONArrayContainsValue(s.db, tag))
	}

	var rows []models.Question
	if errFind := q.Order("next_revision_date ASC").Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("question store: list: %w", errFind)
	}
	return rows, nil
}

// Get loads one question on the user's row.
func (s *QuestionStore) Get(ctx context.Context, userID, id uint64) (models.Question, error) {
	if s == nil || s.db == nil {
		return models.Question{}, fmt.Errorf("question store: not initialized")
	}
	var question models.Question
	if errFind := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&question).Error; errFind != nil {
		return models.Question{}, errFind
	}
	return question, nil
}

// InsertBatch validates and inserts a batch of questions in one create.
// Every row's category name must resolve through nameToID before anything is
// written; a single unresolved name rejects the whole batch.
func (s *QuestionStore) InsertBatch(ctx context.Context, userID uint64, rows []NewQuestion, nameToID map[string]uint64) ([]models.Question, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("question store: not initialized")
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("question store: empty batch")
	}

	for _, row := range rows {
		if strings.TrimSpace(row.Title) == "" {
			return nil, fmt.Errorf("%w: missing title", ErrInvalidQuestion)
		}
		if strings.TrimSpace(row.Topic) == "" {
			return nil, fmt.Errorf("%w: missing topic for %q", ErrInvalidQuestion, row.Title)
		}
		if _, ok := nameToID[row.Category]; !ok {
			return nil, &CategoryNotFoundError{Name: row.Category}
		}
	}

	today := time.Now().Format(revision.DateLayout)
	records := make([]models.Question, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.Question{
			UserID:           userID,
			CategoryID:       nameToID[row.Category],
			Title:            strings.TrimSpace(row.Title),
			Description:      row.Description,
			Topic:            strings.TrimSpace(row.Topic),
			Tags:             models.StringList(row.Tags).Clean(),
			Link:             strings.TrimSpace(row.Link),
			NextRevisionDate: today,
			ConfidenceLevel:  nil,
			RevisionStep:     revision.FormatStep(revision.MinStep),
		})
	}

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if errTx != nil {
		return nil, fmt.Errorf("question store: insert batch: %w", errTx)
	}
	return records, nil
}

// UpdateRating writes the three policy-computed fields on the user's row.
func (s *QuestionStore) UpdateRating(ctx context.Context, userID, id uint64, confidence int, outcome revision.Outcome) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("question store: not initialized")
	}
	res := s.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"confidence_level":   confidence,
			"next_revision_date": outcome.NextDate,
			"revision_step":      outcome.NextStep,
		})
	if res.Error != nil {
		return fmt.Errorf("question store: update rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a question on the user's row.
func (s *QuestionStore) Delete(ctx context.Context, userID, id uint64) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("question store: not initialized")
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Question{})
	if res.Error != nil {
		return fmt.Errorf("question store: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
