package models

import "time"

// A child is only reachable through ChildAdmin edges; there is no
// direct owner column.
type Child struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName  string     `gorm:"size:200;not null" json:"full_name"`
	Gender    string     `gorm:"size:15" json:"gender"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	AvatarURL string     `gorm:"size:255" json:"avatar_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
