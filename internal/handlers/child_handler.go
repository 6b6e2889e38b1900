package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/audit"
	"github.com/GeninoServices01/family-api/internal/jalali"
	"github.com/GeninoServices01/family-api/internal/middleware"
	"github.com/GeninoServices01/family-api/internal/models"
	ucMembership "github.com/GeninoServices01/family-api/internal/usecase/membership"
)

type ChildHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	registerChild *ucMembership.RegisterChild
	listChildren  *ucMembership.ListChildren
}

func NewChildHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	registerChild *ucMembership.RegisterChild,
	listChildren *ucMembership.ListChildren,
) *ChildHandler {
	return &ChildHandler{
		db:            db,
		audit:         auditDispatcher,
		registerChild: registerChild,
		listChildren:  listChildren,
	}
}

// --------- Requests ---------

type CreateChildRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"`
}

type UpdateChildRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}

// --------- Handlers ---------

func (h *ChildHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	in := ucMembership.RegisterChildInput{
		RequesterID: userID,
		FullName:    req.FullName,
		Gender:      normalizeGender(req.Gender),
	}

	if req.BirthDate != "" {
		parsed, err := jalali.Parse(req.BirthDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_birth_date"})
			return
		}
		in.BirthDate = &parsed
	}

	child, err := h.registerChild.Execute(c.Request.Context(), in)
	if err != nil {
		if respondBusiness(c, err) {
			return
		}
		respondInternal(c, "register child", err)
		return
	}

	c.JSON(http.StatusCreated, child)
}

func (h *ChildHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	children, err := h.listChildren.Execute(c.Request.Context(), userID)
	if err != nil {
		respondInternal(c, "list children", err)
		return
	}

	c.JSON(http.StatusOK, children)
}

func (h *ChildHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	childID, ok := parseChildID(c)
	if !ok {
		return
	}

	// Non-admins see 404, not 403: the child's existence is not
	// disclosed outside its family tree.
	if !h.isAdmin(childID, userID) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "child_not_found"})
		return
	}

	var child models.Child
	if err := h.db.First(&child, childID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "child_not_found"})
		return
	}

	var req UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.FullName != nil {
		child.FullName = *req.FullName
	}
	if req.Gender != nil {
		child.Gender = normalizeGender(*req.Gender)
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			child.BirthDate = nil
		} else {
			parsed, err := jalali.Parse(*req.BirthDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_birth_date"})
				return
			}
			child.BirthDate = &parsed
		}
	}

	if err := h.db.Save(&child).Error; err != nil {
		respondInternal(c, "update child", err)
		return
	}

	c.JSON(http.StatusOK, child)
}

func (h *ChildHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	childID, ok := parseChildID(c)
	if !ok {
		return
	}

	var membership models.ChildAdmin
	if err := h.db.
		Where("child_id = ? AND user_id = ?", childID, userID).
		First(&membership).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "child_not_found"})
		return
	}

	if !membership.IsPrimary {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not_authorized"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("child_id = ?", childID).Delete(&models.ChildInvitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("child_id = ?", childID).Delete(&models.ChildAdmin{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Child{}, childID).Error
	})
	if err != nil {
		respondInternal(c, "delete child", err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ChildID:  childID,
		UserID:   &userID,
		Action:   "child_deleted",
		Entity:   "child",
		EntityID: &childID,
	})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --------- Helpers ---------

func (h *ChildHandler) isAdmin(childID, userID uint) bool {
	var count int64
	h.db.Model(&models.ChildAdmin{}).
		Where("child_id = ? AND user_id = ?", childID, userID).
		Count(&count)
	return count > 0
}

func parseChildID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_child_id"})
		return 0, false
	}
	return uint(id), true
}
