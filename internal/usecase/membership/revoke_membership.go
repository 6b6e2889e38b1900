package membership

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/audit"
	domain "github.com/GeninoServices01/family-api/internal/domain/familytree"
	"github.com/GeninoServices01/family-api/internal/httperr"
)

type RevokeMembership struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRevokeMembership(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RevokeMembership {
	return &RevokeMembership{
		repo:  repo,
		audit: audit,
	}
}

// Any co-admin may revoke. The primary edge and the requester's own
// edge are permanent through this path.
func (uc *RevokeMembership) Execute(
	ctx context.Context,
	requesterID uint,
	childID uint,
	membershipID uint,
) error {

	if _, err := uc.repo.GetMembership(ctx, childID, requesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("not_authorized")
		}
		return err
	}

	target, err := uc.repo.GetMembershipByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("member_not_found")
		}
		return err
	}

	if target.ChildID != childID {
		return httperr.ErrBusiness("member_not_found")
	}

	if target.IsPrimary {
		return httperr.ErrBusiness("invariant_violation")
	}

	if target.UserID == requesterID {
		return httperr.ErrBusiness("invariant_violation")
	}

	if err := uc.repo.DeleteMembership(ctx, target.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ChildID:  childID,
		UserID:   &requesterID,
		Action:   "member_revoked",
		Entity:   "child_admin",
		EntityID: &target.ID,
		Metadata: map[string]any{
			"revoked_user_id": target.UserID,
			"role":            target.Role,
			"slot":            target.Slot,
		},
	})

	return nil
}
