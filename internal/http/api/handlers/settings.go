package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/revisehub/revisehub/internal/models"
	"github.com/revisehub/revisehub/internal/store"
)

// SettingHandler manages the revision plan endpoints.
type SettingHandler struct {
	settings *store.SettingsStore
}

// NewSettingHandler constructs a SettingHandler.
func NewSettingHandler(settings *store.SettingsStore) *SettingHandler {
	return &SettingHandler{settings: settings}
}

// GetRevisionPlan returns the user's plan, or the default when unset.
func (h *SettingHandler) GetRevisionPlan(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	plan, errGet := h.settings.Get(c.Request.Context(), userID)
	if errGet != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load revision plan failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"revision_plan": plan})
}

// updateRevisionPlanRequest defines the request body for plan updates.
type updateRevisionPlanRequest struct {
	RevisionPlan models.RevisionPlan `json:"revision_plan"`
}

// UpdateRevisionPlan replaces the user's plan with a full five-key mapping.
func (h *SettingHandler) UpdateRevisionPlan(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body updateRevisionPlanRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if errSet := h.settings.Set(c.Request.Context(), userID, body.RevisionPlan); errSet != nil {
		if errors.Is(errSet, models.ErrInvalidRevisionPlan) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errSet.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update revision plan failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
