package models

import "time"

type ChildInvitation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ChildID uint  `gorm:"not null;index" json:"child_id"`
	Child   Child `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	InviterID uint `gorm:"not null" json:"inviter_id"`
	Inviter   User `gorm:"foreignKey:InviterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Email *string `gorm:"size:100" json:"email,omitempty"`
	Phone *string `gorm:"size:20" json:"phone,omitempty"`

	Token string `gorm:"size:64;uniqueIndex;not null" json:"-"`

	RelationType string `gorm:"size:50;not null" json:"relation_type"`
	Slot         int    `gorm:"not null;default:0" json:"slot"`
	RoleLabel    string `gorm:"size:100" json:"role_label,omitempty"`

	Accepted   bool       `gorm:"not null;default:false" json:"accepted"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	ExpiresAt  time.Time  `gorm:"not null;index" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
