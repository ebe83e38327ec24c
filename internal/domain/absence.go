package domain

import (
	"errors"
	"time"
)

// ErrInvalidDateRange is returned when an absence ends before it starts
var ErrInvalidDateRange = errors.New("absence start date must not be after end date")

// AbsencePeriod blocks every day between StartDate and EndDate (both inclusive).
// Overlapping periods for the same doctor are allowed.
type AbsencePeriod struct {
	ID        int64
	DoctorID  int64
	StartDate time.Time // calendar date, time of day ignored
	EndDate   time.Time // calendar date, time of day ignored
	Reason    string
	CreatedAt time.Time
}

// Validate checks StartDate <= EndDate as calendar dates
func (a *AbsencePeriod) Validate() error {
	if DateOnly(a.EndDate).Before(DateOnly(a.StartDate)) {
		return ErrInvalidDateRange
	}
	return nil
}

// Covers returns true if the calendar date of day falls inside the period
func (a *AbsencePeriod) Covers(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(a.StartDate)) && !d.After(DateOnly(a.EndDate))
}

// DateOnly drops the time of day keeping the calendar date (as UTC midnight)
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
