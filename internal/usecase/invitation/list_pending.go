package invitation

import (
	"context"
	"time"

	domain "github.com/GeninoServices01/family-api/internal/domain/familytree"
	"github.com/GeninoServices01/family-api/internal/models"
)

type ListPendingInvitations struct {
	repo domain.Repository
}

func NewListPendingInvitations(repo domain.Repository) *ListPendingInvitations {
	return &ListPendingInvitations{repo: repo}
}

// Expired rows are filtered lazily on read; nothing sweeps them.
func (uc *ListPendingInvitations) Execute(
	ctx context.Context,
	childID uint,
) ([]models.ChildInvitation, error) {
	return uc.repo.ListPendingInvitations(ctx, childID, time.Now())
}
