package invitation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/audit"
	domain "github.com/GeninoServices01/family-api/internal/domain/familytree"
	"github.com/GeninoServices01/family-api/internal/httperr"
	"github.com/GeninoServices01/family-api/internal/models"
)

type AcceptResult struct {
	ChildID uint   `json:"child_id"`
	Role    string `json:"role"`
	Slot    int    `json:"slot"`
}

type AcceptInvitation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAcceptInvitation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AcceptInvitation {
	return &AcceptInvitation{
		repo:  repo,
		audit: audit,
	}
}

// Acceptance is single-use: the repository flips accepted under a
// guard, so a concurrent second accept fails instead of creating a
// second edge.
func (uc *AcceptInvitation) Execute(
	ctx context.Context,
	accepterID uint,
	token string,
) (*AcceptResult, error) {

	if token == "" {
		return nil, httperr.ErrBusiness("missing_token")
	}

	inv, err := uc.repo.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invitation_not_found")
		}
		return nil, err
	}

	now := time.Now()

	if domain.InvitationExpired(inv, now) {
		return nil, httperr.ErrBusiness("invitation_expired")
	}

	if inv.Accepted {
		return nil, httperr.ErrBusiness("already_accepted")
	}

	if _, err := uc.repo.GetMembership(ctx, inv.ChildID, accepterID); err == nil {
		return nil, httperr.ErrBusiness("already_member")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := domain.AcceptedRole(inv)
	slot := inv.Slot
	if slot < 0 {
		slot = 0
	}

	admin := &models.ChildAdmin{
		ChildID:   inv.ChildID,
		UserID:    accepterID,
		Role:      role,
		Slot:      slot,
		IsPrimary: false,
	}

	if err := uc.repo.AcceptInvitation(ctx, inv, admin, now); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ChildID:  inv.ChildID,
		UserID:   &accepterID,
		Action:   "invitation_accepted",
		Entity:   "child_invitation",
		EntityID: &inv.ID,
		Metadata: map[string]any{
			"role": role,
			"slot": slot,
		},
	})

	return &AcceptResult{
		ChildID: inv.ChildID,
		Role:    role,
		Slot:    slot,
	}, nil
}
