package handlers

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/middleware"
	"github.com/GeninoServices01/family-api/internal/models"
	"github.com/GeninoServices01/family-api/internal/storage"
)

const maxAvatarUploadBytes = 5 << 20

type AvatarHandler struct {
	db    *gorm.DB
	store *storage.AvatarStore
}

func NewAvatarHandler(db *gorm.DB, store *storage.AvatarStore) *AvatarHandler {
	return &AvatarHandler{db: db, store: store}
}

func (h *AvatarHandler) Upload(c *gin.Context) {
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

	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "avatar_storage_disabled"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing_avatar_file"})
		return
	}
	if fileHeader.Size > maxAvatarUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "avatar_too_large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondInternal(c, "open avatar upload", err)
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_image"})
		return
	}

	url, err := h.store.Upload(c.Request.Context(), childID, img)
	if err != nil {
		respondInternal(c, "upload avatar", err)
		return
	}

	if err := h.db.Model(&models.Child{}).
		Where("id = ?", childID).
		Update("avatar_url", url).Error; err != nil {
		respondInternal(c, "save avatar url", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"child_id":   childID,
		"avatar_url": url,
	})
}
