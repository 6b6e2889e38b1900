package invitation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/audit"
	domain "github.com/GeninoServices01/family-api/internal/domain/familytree"
	"github.com/GeninoServices01/family-api/internal/httperr"
)

type CancelInvitation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelInvitation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelInvitation {
	return &CancelInvitation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelInvitation) Execute(
	ctx context.Context,
	requesterID uint,
	invitationID uint,
) error {

	inv, err := uc.repo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("invitation_not_found")
		}
		return err
	}

	if inv.Accepted {
		return httperr.ErrBusiness("invariant_violation")
	}

	// Same allow-list as issuing.
	requester, err := uc.repo.GetMembership(ctx, inv.ChildID, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("not_authorized")
		}
		return err
	}
	if !domain.CanInvite(requester.Role) {
		return httperr.ErrBusiness("not_authorized")
	}

	if err := uc.repo.DeleteInvitation(ctx, inv.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ChildID:  inv.ChildID,
		UserID:   &requesterID,
		Action:   "invitation_cancelled",
		Entity:   "child_invitation",
		EntityID: &inv.ID,
	})

	return nil
}
