package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/middleware"
	"github.com/GeninoServices01/family-api/internal/models"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

var validLifeStages = map[string]bool{
	"user":      true,
	"single":    true,
	"couple":    true,
	"pregnancy": true,
	"parent":    true,
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user_not_found"})
			return
		}
		respondInternal(c, "get profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"user": publicUser(&user),
	})
}

type UpdateLifeStageRequest struct {
	LifeStage string `json:"life_stage" binding:"required"`
}

func (h *ProfileHandler) UpdateLifeStage(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateLifeStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validLifeStages[req.LifeStage] {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_life_stage"})
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("life_stage", req.LifeStage).Error; err != nil {
		respondInternal(c, "update life stage", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"life_stage": req.LifeStage,
	})
}
