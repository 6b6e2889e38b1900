package models

import "time"

// ChildAdmin links a user to a child with a role and slot.
// The composite unique index is the backstop for the
// (child, role, slot) invariant under concurrent inserts.
type ChildAdmin struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ChildID uint  `gorm:"not null;uniqueIndex:idx_child_role_slot" json:"child_id"`
	Child   Child `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Role      string `gorm:"size:50;not null;uniqueIndex:idx_child_role_slot" json:"role"`
	Slot      int    `gorm:"not null;default:0;uniqueIndex:idx_child_role_slot" json:"slot"`
	IsPrimary bool   `gorm:"not null;default:false" json:"is_primary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
