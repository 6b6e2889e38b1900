package models

import "time"

// Optional identity columns are pointers so the unique indexes
// allow multiple NULL rows.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	FullName  string `gorm:"size:200;not null" json:"full_name"`

	Email        string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        *string `gorm:"size:20;uniqueIndex" json:"phone,omitempty"`
	Username     *string `gorm:"size:50;uniqueIndex" json:"username,omitempty"`
	NationalCode *string `gorm:"size:20;uniqueIndex" json:"national_code,omitempty"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`

	Gender    string     `gorm:"size:15;default:'unspecified'" json:"gender"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Province  string     `gorm:"size:100" json:"province"`
	City      string     `gorm:"size:100" json:"city"`
	LifeStage string     `gorm:"size:20;default:'user'" json:"life_stage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
