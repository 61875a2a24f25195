package model

import (
	"time"

	"gorm.io/gorm"
)

// Event is a scheduled time slot owned by exactly one user.
// StartDate is always strictly before FinishDate.
type Event struct {
	ID         string         `json:"id" gorm:"type:char(24);primaryKey"`
	UserID     string         `json:"userId" gorm:"type:char(24);not null;index"`
	StartDate  time.Time      `json:"startDate" gorm:"not null;index;precision:3"`
	FinishDate time.Time      `json:"finishDate" gorm:"not null;precision:3"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets the ID before creating the record.
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	return nil
}

// OwnedBy reports whether userID owns the event.
func (e *Event) OwnedBy(userID string) bool {
	return e.UserID == userID
}
