package repository

import (
	"time"

	"gorm.io/gorm"

	"scheduler/internal/model"
)

// FilterKind selects which single predicate an EventFilter applies.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterByUser
	FilterByDate
	FilterByInterval
	FilterFrom
	FilterUntil
)

// EventFilter is one predicate over events. Only the fields used by Kind are set.
type EventFilter struct {
	Kind   FilterKind
	UserID string
	Date   time.Time
	From   time.Time
	Until  time.Time
}

// Apply adds the filter's WHERE clause to db.
func (f EventFilter) Apply(db *gorm.DB) *gorm.DB {
	switch f.Kind {
	case FilterByUser:
		return db.Where("user_id = ?", f.UserID)
	case FilterByDate:
		return db.Where("start_date = ?", f.Date)
	case FilterByInterval:
		return db.Where("start_date BETWEEN ? AND ?", f.From, f.Until)
	case FilterFrom:
		return db.Where("start_date >= ?", f.From)
	case FilterUntil:
		return db.Where("start_date <= ?", f.Until)
	default:
		return db
	}
}

// Matches reports whether event satisfies the filter, using the same
// inclusive bounds as Apply.
func (f EventFilter) Matches(event *model.Event) bool {
	switch f.Kind {
	case FilterByUser:
		return event.UserID == f.UserID
	case FilterByDate:
		return event.StartDate.Equal(f.Date)
	case FilterByInterval:
		return !event.StartDate.Before(f.From) && !event.StartDate.After(f.Until)
	case FilterFrom:
		return !event.StartDate.Before(f.From)
	case FilterUntil:
		return !event.StartDate.After(f.Until)
	default:
		return true
	}
}
