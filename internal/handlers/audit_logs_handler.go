package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/httpresp"
	"github.com/GeninoServices01/family-api/internal/middleware"
	"github.com/GeninoServices01/family-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the most recent audit events for a child the
// requester administers.
func (h *AuditLogsHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	childID, ok := parseChildID(c)
	if !ok {
		return
	}

	var count int64
	h.db.Model(&models.ChildAdmin{}).
		Where("child_id = ? AND user_id = ?", childID, userID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "child_not_found"})
		return
	}

	var logs []models.AuditLog
	if err := h.db.
		Where("child_id = ?", childID).
		Order("created_at DESC").
		Limit(100).
		Find(&logs).Error; err != nil {
		respondInternal(c, "list audit logs", err)
		return
	}

	httpresp.List(c, logs)
}
