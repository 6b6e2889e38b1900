package membership

import (
	"context"

	domain "github.com/GeninoServices01/family-api/internal/domain/familytree"
	"github.com/GeninoServices01/family-api/internal/models"
)

type ListChildren struct {
	repo domain.Repository
}

func NewListChildren(repo domain.Repository) *ListChildren {
	return &ListChildren{repo: repo}
}

func (uc *ListChildren) Execute(
	ctx context.Context,
	userID uint,
) ([]models.Child, error) {
	return uc.repo.ListChildrenForUser(ctx, userID)
}
