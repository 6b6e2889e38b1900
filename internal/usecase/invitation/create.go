package invitation

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/audit"
	domain "github.com/GeninoServices01/family-api/internal/domain/familytree"
	"github.com/GeninoServices01/family-api/internal/httperr"
	"github.com/GeninoServices01/family-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInvitationInput struct {
	RequesterID uint
	ChildID     uint

	Email *string
	Phone *string

	RelationType string
	Slot         int
	RoleLabel    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateInvitation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateInvitation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateInvitation {
	return &CreateInvitation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateInvitation) Execute(
	ctx context.Context,
	in CreateInvitationInput,
) (*models.ChildInvitation, error) {

	// --------------------------------------------------
	// 1. Validation
	// --------------------------------------------------
	if in.ChildID == 0 {
		return nil, httperr.ErrBusiness("validation_error")
	}

	email := trimmed(in.Email)
	phone := trimmed(in.Phone)
	if email == nil && phone == nil {
		return nil, httperr.ErrBusiness("missing_destination")
	}

	relationType := strings.TrimSpace(in.RelationType)
	if relationType == "" {
		return nil, httperr.ErrBusiness("missing_relation_type")
	}

	if in.Slot < 0 {
		return nil, httperr.ErrBusiness("invalid_slot")
	}

	// --------------------------------------------------
	// 2. Authorization: only father/mother admins invite
	// --------------------------------------------------
	requester, err := uc.repo.GetMembership(ctx, in.ChildID, in.RequesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_authorized")
		}
		return nil, err
	}
	if !domain.CanInvite(requester.Role) {
		return nil, httperr.ErrBusiness("not_authorized")
	}

	now := time.Now()

	// --------------------------------------------------
	// 3. Target slot must not already be connected
	// --------------------------------------------------
	taken, err := uc.repo.SlotTaken(ctx, in.ChildID, relationType, in.Slot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("slot_occupied")
	}

	// --------------------------------------------------
	// 4. No duplicate active invitations
	// --------------------------------------------------
	dupSlot, err := uc.repo.HasActiveInvitationForSlot(
		ctx, in.ChildID, relationType, in.Slot, now,
	)
	if err != nil {
		return nil, err
	}
	if dupSlot {
		return nil, httperr.ErrBusiness("duplicate_slot_invite")
	}

	dupDest, err := uc.repo.HasActiveInvitationForDestination(
		ctx, in.ChildID, email, phone, now,
	)
	if err != nil {
		return nil, err
	}
	if dupDest {
		return nil, httperr.ErrBusiness("duplicate_destination_invite")
	}

	// --------------------------------------------------
	// 5. Token + expiry
	// --------------------------------------------------
	token, err := domain.NewInvitationToken()
	if err != nil {
		return nil, err
	}

	inv := &models.ChildInvitation{
		ChildID:      in.ChildID,
		InviterID:    in.RequesterID,
		Email:        email,
		Phone:        phone,
		Token:        token,
		RelationType: relationType,
		Slot:         in.Slot,
		RoleLabel:    strings.TrimSpace(in.RoleLabel),
		Accepted:     false,
		ExpiresAt:    now.Add(domain.InvitationTTL),
	}

	// --------------------------------------------------
	// 6. Persist
	// --------------------------------------------------
	if err := uc.repo.CreateInvitation(ctx, inv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ChildID:  in.ChildID,
		UserID:   &in.RequesterID,
		Action:   "invitation_created",
		Entity:   "child_invitation",
		EntityID: &inv.ID,
		Metadata: map[string]any{
			"relation_type": relationType,
			"slot":          in.Slot,
		},
	})

	// The token travels back to the issuer; delivery to the invitee
	// happens out-of-band.
	return inv, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
