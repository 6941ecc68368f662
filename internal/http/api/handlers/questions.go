package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/revisehub/revisehub/internal/models"
	"github.com/revisehub/revisehub/internal/revision"
	"github.com/revisehub/revisehub/internal/store"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// QuestionHandler manages question endpoints.
type QuestionHandler struct {
	questions  *store.QuestionStore
	categories *store.CategoryStore
	settings   *store.SettingsStore
	reviews    *store.ReviewStore
}

// NewQuestionHandler constructs a QuestionHandler.
func NewQuestionHandler(questions *store.QuestionStore, categories *store.CategoryStore, settings *store.SettingsStore, reviews *store.ReviewStore) *QuestionHandler {
	return &QuestionHandler{questions: questions, categories: categories, settings: settings, reviews: reviews}
}

// List returns the user's questions with optional filters. With due=today
// only questions due on the current date are returned.
func (h *QuestionHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	filters := store.QuestionFilters{
		Topic: strings.TrimSpace(c.Query("topic")),
		Tag:   strings.TrimSpace(c.Query("tag")),
	}
	if categoryQ := strings.TrimSpace(c.Query("category_id")); categoryQ != "" {
		id, errParse := strconv.ParseUint(categoryQ, 10, 64)
		if errParse != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		filters.CategoryID = id
	}

	rows, errList := h.questions.List(c.Request.Context(), userID, filters)
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list questions failed"})
		return
	}

	if strings.EqualFold(strings.TrimSpace(c.Query("due")), "today") {
		today := time.Now()
		due := rows[:0]
		for _, row := range rows {
			if revision.DueOn(row.NextRevisionDate, today) {
				due = append(due, row)
			}
		}
		rows = due
	}

	names, errNames := h.categoryNames(c, userID)
	if errNames != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list questions failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, formatQuestion(&row, names))
	}
	c.JSON(http.StatusOK, gin.H{"questions": out})
}

// BatchCreate inserts a batch of questions referenced by category name.
// The whole batch is rejected when any row names an unknown category.
func (h *QuestionHandler) BatchCreate(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var rows []store.NewQuestion
	if errBind := c.ShouldBindJSON(&rows); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty batch"})
		return
	}

	lookup, errLookup := h.categories.NameToID(c.Request.Context(), userID)
	if errLookup != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolve categories failed"})
		return
	}

	created, errInsert := h.questions.InsertBatch(c.Request.Context(), userID, rows, lookup)
	if errInsert != nil {
		var notFound *store.CategoryNotFoundError
		if errors.As(errInsert, &notFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": notFound.Error()})
			return
		}
		if errors.Is(errInsert, store.ErrInvalidQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInsert.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insert questions failed"})
		return
	}

	names, errNames := h.categoryNames(c, userID)
	if errNames != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insert questions failed"})
		return
	}

	out := make([]gin.H, 0, len(created))
	for _, row := range created {
		out = append(out, formatQuestion(&row, names))
	}
	c.JSON(http.StatusCreated, gin.H{"questions": out})
}

// rateRequest defines the request body for rating a question.
type rateRequest struct {
	Confidence int `json:"confidence"`
}

// Rate applies the revision policy to a question for the given confidence
// and persists the computed fields.
func (h *QuestionHandler) Rate(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body rateRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if !revision.ValidConfidence(body.Confidence) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confidence must be between 1 and 5"})
		return
	}

	question, errGet := h.questions.Get(c.Request.Context(), userID, id)
	if errGet != nil {
		if errors.Is(errGet, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query question failed"})
		return
	}

	plan, errPlan := h.settings.Get(c.Request.Context(), userID)
	if errPlan != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load revision plan failed"})
		return
	}

	outcome := revision.Next(question.RevisionStep, body.Confidence, plan, time.Now())
	if errUpdate := h.questions.UpdateRating(c.Request.Context(), userID, id, body.Confidence, outcome); errUpdate != nil {
		if errors.Is(errUpdate, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update question failed"})
		return
	}

	// History is best effort; a failed log line must not fail the rating.
	if errRecord := h.reviews.Record(c.Request.Context(), userID, id, body.Confidence, time.Now()); errRecord != nil {
		log.WithError(errRecord).WithField("question_id", id).Error("record review failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 id,
		"confidence_level":   body.Confidence,
		"next_revision_date": outcome.NextDate,
		"revision_step":      outcome.NextStep,
	})
}

// Delete removes a question.
func (h *QuestionHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if errDelete := h.questions.Delete(c.Request.Context(), userID, id); errDelete != nil {
		if errors.Is(errDelete, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete question failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// categoryNames builds the id-to-name lookup used in responses.
func (h *QuestionHandler) categoryNames(c *gin.Context, userID uint64) (map[uint64]string, error) {
	rows, errList := h.categories.List(c.Request.Context(), userID)
	if errList != nil {
		return nil, errList
	}
	names := make(map[uint64]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// formatQuestion converts a question model to a response payload.
func formatQuestion(question *models.Question, categoryNames map[uint64]string) gin.H {
	return gin.H{
		"id":                 question.ID,
		"title":              question.Title,
		"description":        question.Description,
		"topic":              question.Topic,
		"tags":               question.Tags,
		"category_id":        question.CategoryID,
		"category":           categoryNames[question.CategoryID],
		"link":               question.Link,
		"next_revision_date": question.NextRevisionDate,
		"confidence_level":   question.ConfidenceLevel,
		"revision_step":      question.RevisionStep,
	}
}
