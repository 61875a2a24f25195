package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account that can sign in and own events.
type User struct {
	ID           string    `json:"id" gorm:"type:char(24);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Events []Event `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets the ID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}
