package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GeninoServices01/family-api/internal/httperr"
)

// Business codes map to statuses in exactly one place so the façade
// stays deterministic.
var businessStatus = map[string]int{
	"validation_error":      http.StatusBadRequest,
	"missing_destination":   http.StatusBadRequest,
	"missing_relation_type": http.StatusBadRequest,
	"invalid_slot":          http.StatusBadRequest,
	"missing_token":         http.StatusBadRequest,

	"not_authorized": http.StatusForbidden,

	"child_not_found":      http.StatusNotFound,
	"member_not_found":     http.StatusNotFound,
	"invitation_not_found": http.StatusNotFound,

	"slot_occupied":                http.StatusConflict,
	"duplicate_slot_invite":        http.StatusConflict,
	"duplicate_destination_invite": http.StatusConflict,
	"already_accepted":             http.StatusConflict,
	"already_member":               http.StatusConflict,
	"invariant_violation":          http.StatusConflict,

	"invitation_expired": http.StatusGone,
}

var businessMessage = map[string]string{
	"validation_error":      "Required fields are missing or malformed.",
	"missing_destination":   "An email or phone number is required.",
	"missing_relation_type": "A relation type is required.",
	"invalid_slot":          "Slot must be a non-negative integer.",
	"missing_token":         "An invitation token is required.",

	"not_authorized": "You are not allowed to perform this action for this child.",

	"child_not_found":      "Child not found.",
	"member_not_found":     "Member not found.",
	"invitation_not_found": "Invitation not found.",

	"slot_occupied":                "This relation slot is already connected.",
	"duplicate_slot_invite":        "An active invitation already targets this slot.",
	"duplicate_destination_invite": "An active invitation was already sent to this person.",
	"already_accepted":             "This invitation has already been used.",
	"already_member":               "You are already an admin of this child.",
	"invariant_violation":          "This member cannot be removed.",

	"invitation_expired": "This invitation has expired.",
}

// respondBusiness writes the mapped response and reports whether err
// was an expected business condition. Anything else is the caller's
// 500 path.
func respondBusiness(c *gin.Context, err error) bool {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		return false
	}

	status, known := businessStatus[code]
	if !known {
		return false
	}

	msg := businessMessage[code]
	if msg == "" {
		msg = "Request could not be completed."
	}

	httperr.Write(c, status, code, msg)
	return true
}

func respondInternal(c *gin.Context, op string, err error) {
	log.Printf("%s: %v", op, err)
	httperr.Internal(c, "internal_error", "Unexpected server error.")
}
