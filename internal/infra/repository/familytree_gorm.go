package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/GeninoServices01/family-api/internal/httperr"
	"github.com/GeninoServices01/family-api/internal/models"
)

type FamilyTreeGormRepository struct {
	db *gorm.DB
}

func NewFamilyTreeGormRepository(db *gorm.DB) *FamilyTreeGormRepository {
	return &FamilyTreeGormRepository{db: db}
}

// The composite unique index on (child_id, role, slot) is the real
// correctness mechanism; pre-checks in the usecases only exist for
// friendly error messages. Any duplicate-key failure the database
// raises is translated to the same business code here.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *FamilyTreeGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Child
// --------------------------------------------------

func (r *FamilyTreeGormRepository) GetChildByID(
	ctx context.Context,
	id uint,
) (*models.Child, error) {

	var child models.Child
	if err := r.db.WithContext(ctx).First(&child, id).Error; err != nil {
		return nil, err
	}
	return &child, nil
}

func (r *FamilyTreeGormRepository) CreateChildWithPrimaryAdmin(
	ctx context.Context,
	child *models.Child,
	admin *models.ChildAdmin,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(child).Error; err != nil {
			return err
		}

		admin.ChildID = child.ID
		if err := tx.Create(admin).Error; err != nil {
			if isUniqueViolation(err) {
				return httperr.ErrBusiness("slot_occupied")
			}
			return err
		}
		return nil
	})
}

func (r *FamilyTreeGormRepository) ListChildrenForUser(
	ctx context.Context,
	userID uint,
) ([]models.Child, error) {

	var children []models.Child
	err := r.db.WithContext(ctx).
		Joins("JOIN child_admins ON child_admins.child_id = children.id").
		Where("child_admins.user_id = ?", userID).
		Order("children.created_at ASC").
		Find(&children).Error
	if err != nil {
		return nil, err
	}
	return children, nil
}

// --------------------------------------------------
// Membership
// --------------------------------------------------

func (r *FamilyTreeGormRepository) GetMembership(
	ctx context.Context,
	childID uint,
	userID uint,
) (*models.ChildAdmin, error) {

	var admin models.ChildAdmin
	if err := r.db.WithContext(ctx).
		Where("child_id = ? AND user_id = ?", childID, userID).
		First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *FamilyTreeGormRepository) GetMembershipByID(
	ctx context.Context,
	id uint,
) (*models.ChildAdmin, error) {

	var admin models.ChildAdmin
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *FamilyTreeGormRepository) ListMembers(
	ctx context.Context,
	childID uint,
) ([]models.ChildAdmin, error) {

	var members []models.ChildAdmin
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("child_id = ?", childID).
		Order("is_primary DESC, created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *FamilyTreeGormRepository) SlotTaken(
	ctx context.Context,
	childID uint,
	role string,
	slot int,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ChildAdmin{}).
		Where("child_id = ? AND role = ? AND slot = ?", childID, role, slot).
		Count(&count).Error
	return count > 0, err
}

func (r *FamilyTreeGormRepository) DeleteMembership(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.ChildAdmin{}, id).Error
}

// --------------------------------------------------
// Invitation
// --------------------------------------------------

func (r *FamilyTreeGormRepository) CreateInvitation(
	ctx context.Context,
	inv *models.ChildInvitation,
) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *FamilyTreeGormRepository) GetInvitationByToken(
	ctx context.Context,
	token string,
) (*models.ChildInvitation, error) {

	var inv models.ChildInvitation
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *FamilyTreeGormRepository) GetInvitationByID(
	ctx context.Context,
	id uint,
) (*models.ChildInvitation, error) {

	var inv models.ChildInvitation
	if err := r.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *FamilyTreeGormRepository) ListPendingInvitations(
	ctx context.Context,
	childID uint,
	now time.Time,
) ([]models.ChildInvitation, error) {

	var pending []models.ChildInvitation
	err := r.db.WithContext(ctx).
		Where("child_id = ? AND accepted = ? AND expires_at > ?", childID, false, now).
		Order("relation_type ASC, slot ASC").
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *FamilyTreeGormRepository) HasActiveInvitationForSlot(
	ctx context.Context,
	childID uint,
	relationType string,
	slot int,
	now time.Time,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ChildInvitation{}).
		Where(
			"child_id = ? AND relation_type = ? AND slot = ? AND accepted = ? AND expires_at > ?",
			childID, relationType, slot, false, now,
		).
		Count(&count).Error
	return count > 0, err
}

func (r *FamilyTreeGormRepository) HasActiveInvitationForDestination(
	ctx context.Context,
	childID uint,
	email *string,
	phone *string,
	now time.Time,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.ChildInvitation{}).
		Where("child_id = ? AND accepted = ? AND expires_at > ?", childID, false, now)

	switch {
	case email != nil && phone != nil:
		q = q.Where("email = ? OR phone = ?", *email, *phone)
	case email != nil:
		q = q.Where("email = ?", *email)
	case phone != nil:
		q = q.Where("phone = ?", *phone)
	default:
		return false, nil
	}

	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *FamilyTreeGormRepository) AcceptInvitation(
	ctx context.Context,
	inv *models.ChildInvitation,
	admin *models.ChildAdmin,
	now time.Time,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Guarded update makes concurrent double-accept lose cleanly:
		// only one transaction flips accepted from false to true.
		res := tx.Model(&models.ChildInvitation{}).
			Where("id = ? AND accepted = ?", inv.ID, false).
			Updates(map[string]any{
				"accepted":    true,
				"accepted_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("already_accepted")
		}

		if err := tx.Create(admin).Error; err != nil {
			if isUniqueViolation(err) {
				return httperr.ErrBusiness("slot_occupied")
			}
			return err
		}

		inv.Accepted = true
		inv.AcceptedAt = &now
		return nil
	})
}

func (r *FamilyTreeGormRepository) DeleteInvitation(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.ChildInvitation{}, id).Error
}
