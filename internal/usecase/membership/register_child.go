package membership

import (
	"context"
	"strings"
	"time"

	"github.com/GeninoServices01/family-api/internal/audit"
	domain "github.com/GeninoServices01/family-api/internal/domain/familytree"
	"github.com/GeninoServices01/family-api/internal/httperr"
	"github.com/GeninoServices01/family-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RegisterChildInput struct {
	RequesterID uint

	FullName  string
	Gender    string
	BirthDate *time.Time
}

// ======================================================
// USE CASE
// ======================================================

type RegisterChild struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRegisterChild(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RegisterChild {
	return &RegisterChild{
		repo:  repo,
		audit: audit,
	}
}

// Execute creates the child and its primary admin edge in one
// transaction; a child without an admin must never persist.
func (uc *RegisterChild) Execute(
	ctx context.Context,
	in RegisterChildInput,
) (*models.Child, error) {

	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, httperr.ErrBusiness("validation_error")
	}

	requester, err := uc.repo.GetUserByID(ctx, in.RequesterID)
	if err != nil {
		return nil, err
	}

	child := &models.Child{
		FullName:  fullName,
		Gender:    in.Gender,
		BirthDate: in.BirthDate,
	}

	admin := &models.ChildAdmin{
		UserID:    requester.ID,
		Role:      string(domain.RoleForGender(requester.Gender)),
		Slot:      0,
		IsPrimary: true,
	}

	if err := uc.repo.CreateChildWithPrimaryAdmin(ctx, child, admin); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ChildID:  child.ID,
		UserID:   &requester.ID,
		Action:   "child_registered",
		Entity:   "child",
		EntityID: &child.ID,
	})

	return child, nil
}
