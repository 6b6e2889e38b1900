package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GeninoServices01/family-api/internal/middleware"
	ucInvitation "github.com/GeninoServices01/family-api/internal/usecase/invitation"
)

type InvitationHandler struct {
	create *ucInvitation.CreateInvitation
	accept *ucInvitation.AcceptInvitation
	cancel *ucInvitation.CancelInvitation
}

func NewInvitationHandler(
	create *ucInvitation.CreateInvitation,
	accept *ucInvitation.AcceptInvitation,
	cancel *ucInvitation.CancelInvitation,
) *InvitationHandler {
	return &InvitationHandler{
		create: create,
		accept: accept,
		cancel: cancel,
	}
}

// --------- Requests ---------

type CreateInvitationRequest struct {
	ChildID      uint    `json:"child_id" binding:"required"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	RelationType string  `json:"relation_type"`
	Slot         *int    `json:"slot,omitempty"`
	RoleLabel    string  `json:"role_label"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

// --------- Handlers ---------

func (h *InvitationHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":      false,
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slot := 0
	if req.Slot != nil {
		slot = *req.Slot
	}

	inv, err := h.create.Execute(c.Request.Context(), ucInvitation.CreateInvitationInput{
		RequesterID:  userID,
		ChildID:      req.ChildID,
		Email:        req.Email,
		Phone:        req.Phone,
		RelationType: req.RelationType,
		Slot:         slot,
		RoleLabel:    req.RoleLabel,
	})
	if err != nil {
		if respondBusiness(c, err) {
			return
		}
		respondInternal(c, "create invitation", err)
		return
	}

	// The issuer relays the token to the invitee out-of-band; this
	// API never sends email or SMS.
	c.JSON(http.StatusCreated, gin.H{
		"ok":            true,
		"invitation_id": inv.ID,
		"token":         inv.Token,
		"relation_type": inv.RelationType,
		"slot":          inv.Slot,
		"expires_at":    inv.ExpiresAt,
	})
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": "invalid_request",
		})
		return
	}

	result, err := h.accept.Execute(c.Request.Context(), userID, req.Token)
	if err != nil {
		if respondBusiness(c, err) {
			return
		}
		respondInternal(c, "accept invitation", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"child_id": result.ChildID,
		"role":     result.Role,
		"slot":     result.Slot,
	})
}

func (h *InvitationHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("invitationId"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_invitation_id"})
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), userID, uint(id)); err != nil {
		if respondBusiness(c, err) {
			return
		}
		respondInternal(c, "cancel invitation", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
