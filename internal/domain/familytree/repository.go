package familytree

import (
	"context"
	"time"

	"github.com/GeninoServices01/family-api/internal/models"
)

type Repository interface {
	// -------- User --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Child --------
	GetChildByID(
		ctx context.Context,
		id uint,
	) (*models.Child, error)

	CreateChildWithPrimaryAdmin(
		ctx context.Context,
		child *models.Child,
		admin *models.ChildAdmin,
	) error

	ListChildrenForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Child, error)

	// -------- Membership --------
	GetMembership(
		ctx context.Context,
		childID uint,
		userID uint,
	) (*models.ChildAdmin, error)

	GetMembershipByID(
		ctx context.Context,
		id uint,
	) (*models.ChildAdmin, error)

	ListMembers(
		ctx context.Context,
		childID uint,
	) ([]models.ChildAdmin, error)

	SlotTaken(
		ctx context.Context,
		childID uint,
		role string,
		slot int,
	) (bool, error)

	DeleteMembership(
		ctx context.Context,
		id uint,
	) error

	// -------- Invitation --------
	CreateInvitation(
		ctx context.Context,
		inv *models.ChildInvitation,
	) error

	GetInvitationByToken(
		ctx context.Context,
		token string,
	) (*models.ChildInvitation, error)

	GetInvitationByID(
		ctx context.Context,
		id uint,
	) (*models.ChildInvitation, error)

	ListPendingInvitations(
		ctx context.Context,
		childID uint,
		now time.Time,
	) ([]models.ChildInvitation, error)

	HasActiveInvitationForSlot(
		ctx context.Context,
		childID uint,
		relationType string,
		slot int,
		now time.Time,
	) (bool, error)

	HasActiveInvitationForDestination(
		ctx context.Context,
		childID uint,
		email *string,
		phone *string,
		now time.Time,
	) (bool, error)

	// AcceptInvitation flips the row to accepted and creates the
	// membership edge in one transaction.
	AcceptInvitation(
		ctx context.Context,
		inv *models.ChildInvitation,
		admin *models.ChildAdmin,
		now time.Time,
	) error

	DeleteInvitation(
		ctx context.Context,
		id uint,
	) error
}
