package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/revisehub/revisehub/internal/store"
)

// ReviewHandler serves review history aggregates.
type ReviewHandler struct {
	reviews *store.ReviewStore
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviews *store.ReviewStore) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Stats returns the user's review totals and per-confidence breakdown.
func (h *ReviewHandler) Stats(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, errStats := h.reviews.Stats(c.Request.Context(), userID)
	if errStats != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load review stats failed"})
		return
	}

	byConfidence := make(map[string]int64, len(stats.ByConfidence))
	for confidence, count := range stats.ByConfidence {
		byConfidence[strconv.Itoa(confidence)] = count
	}
	c.JSON(http.StatusOK, gin.H{
		"total":         stats.Total,
		"by_confidence": byConfidence,
	})
}
