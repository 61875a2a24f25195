package service

import (
	"fmt"
	"strings"
	"time"

	"scheduler/internal/errors"
)

// Field names of the event date range in request bodies.
const (
	FieldStartDate  = "startDate"
	FieldFinishDate = "finishDate"
)

// dateLayouts are tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// ParseDate parses a date in any of the accepted layouts. The result is
// truncated to the millisecond precision of the event date columns.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Truncate(time.Millisecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// DateRange is a validated [Start, Finish) pair with Start strictly before Finish.
type DateRange struct {
	Start  time.Time
	Finish time.Time
}

// ValidateDateRange checks presence, parseability and ordering of an event's dates.
func ValidateDateRange(startDate, finishDate *string) (DateRange, error) {
	if isBlank(startDate) || isBlank(finishDate) {
		return DateRange{}, errors.ErrMissingDates
	}

	start, err := ParseDate(*startDate)
	if err != nil {
		return DateRange{}, errors.NotADate(FieldStartDate)
	}
	finish, err := ParseDate(*finishDate)
	if err != nil {
		return DateRange{}, errors.NotADate(FieldFinishDate)
	}

	if !start.Before(finish) {
		return DateRange{}, errors.ErrInvalidRange
	}

	return DateRange{Start: start, Finish: finish}, nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
