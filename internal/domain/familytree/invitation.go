package familytree

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/GeninoServices01/family-api/internal/models"
)

const InvitationTTL = 7 * 24 * time.Hour

// TokenBytes of entropy; the hex token is twice as long.
const TokenBytes = 32

// Expiry is derived from the clock on every read, never stored.
// All read and accept paths must go through these predicates.

func InvitationExpired(inv *models.ChildInvitation, now time.Time) bool {
	return !inv.ExpiresAt.After(now)
}

func InvitationActive(inv *models.ChildInvitation, now time.Time) bool {
	return !inv.Accepted && !InvitationExpired(inv, now)
}

func NewInvitationToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// AcceptedRole resolves the role the accepter will hold.
func AcceptedRole(inv *models.ChildInvitation) string {
	if inv.RelationType == "" {
		return string(RoleRelative)
	}
	return inv.RelationType
}
