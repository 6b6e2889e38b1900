package membership

import (
	"context"

	domain "github.com/GeninoServices01/family-api/internal/domain/familytree"
	"github.com/GeninoServices01/family-api/internal/models"
)

type ListMembers struct {
	repo domain.Repository
}

func NewListMembers(repo domain.Repository) *ListMembers {
	return &ListMembers{repo: repo}
}

func (uc *ListMembers) Execute(
	ctx context.Context,
	childID uint,
) ([]models.ChildAdmin, error) {
	return uc.repo.ListMembers(ctx, childID)
}
