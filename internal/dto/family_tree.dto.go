package dto

import "time"

type MemberDTO struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Slot      int       `json:"slot"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

type PendingInvitationDTO struct {
	ID           uint      `json:"id"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	RelationType string    `json:"relation_type"`
	Slot         int       `json:"slot"`
	RoleLabel    string    `json:"role_label,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}
