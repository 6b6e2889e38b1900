package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GeninoServices01/family-api/internal/dto"
	"github.com/GeninoServices01/family-api/internal/middleware"
	ucInvitation "github.com/GeninoServices01/family-api/internal/usecase/invitation"
	ucMembership "github.com/GeninoServices01/family-api/internal/usecase/membership"
)

type FamilyTreeHandler struct {
	listMembers      *ucMembership.ListMembers
	revokeMembership *ucMembership.RevokeMembership
	listPending      *ucInvitation.ListPendingInvitations
}

func NewFamilyTreeHandler(
	listMembers *ucMembership.ListMembers,
	revokeMembership *ucMembership.RevokeMembership,
	listPending *ucInvitation.ListPendingInvitations,
) *FamilyTreeHandler {
	return &FamilyTreeHandler{
		listMembers:      listMembers,
		revokeMembership: revokeMembership,
		listPending:      listPending,
	}
}

func (h *FamilyTreeHandler) Members(c *gin.Context) {
	childID, ok := parseIDParam(c, "childId")
	if !ok {
		return
	}

	members, err := h.listMembers.Execute(c.Request.Context(), childID)
	if err != nil {
		respondInternal(c, "list members", err)
		return
	}

	out := make([]dto.MemberDTO, 0, len(members))
	for _, m := range members {
		out = append(out, dto.MemberDTO{
			ID:        m.ID,
			UserID:    m.UserID,
			FullName:  m.User.FullName,
			Email:     m.User.Email,
			Role:      m.Role,
			Slot:      m.Slot,
			IsPrimary: m.IsPrimary,
			CreatedAt: m.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"child_id": childID,
		"members":  out,
	})
}

func (h *FamilyTreeHandler) PendingInvitations(c *gin.Context) {
	childID, ok := parseIDParam(c, "childId")
	if !ok {
		return
	}

	pending, err := h.listPending.Execute(c.Request.Context(), childID)
	if err != nil {
		respondInternal(c, "list pending invitations", err)
		return
	}

	out := make([]dto.PendingInvitationDTO, 0, len(pending))
	for _, inv := range pending {
		out = append(out, dto.PendingInvitationDTO{
			ID:           inv.ID,
			Email:        inv.Email,
			Phone:        inv.Phone,
			RelationType: inv.RelationType,
			Slot:         inv.Slot,
			RoleLabel:    inv.RoleLabel,
			CreatedAt:    inv.CreatedAt,
			ExpiresAt:    inv.ExpiresAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":                  true,
		"child_id":            childID,
		"pending_invitations": out,
	})
}

func (h *FamilyTreeHandler) RemoveMember(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	childID, ok := parseIDParam(c, "childId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	err := h.revokeMembership.Execute(c.Request.Context(), userID, childID, memberID)
	if err != nil {
		if respondBusiness(c, err) {
			return
		}
		respondInternal(c, "revoke membership", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"child_id":  childID,
		"member_id": memberID,
	})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_" + name})
		return 0, false
	}
	return uint(id), true
}
