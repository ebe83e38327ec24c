package domain

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	// ErrInvalidDayOfWeek is returned for a day outside 0..6
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")

	// ErrInvalidTimeRange is returned when start is not strictly before end
	ErrInvalidTimeRange = errors.New("start time must be before end time")
)

// WeeklyScheduleRule is a recurring working interval of a doctor on one day of the week.
// A doctor may have several rules for the same day (split shifts).
type WeeklyScheduleRule struct {
	ID        int64
	DoctorID  int64
	DayOfWeek time.Weekday // 0 = Sunday ... 6 = Saturday
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
}

// Validate checks the rule invariants (same-day interval, start < end)
func (r *WeeklyScheduleRule) Validate() error {
	if r.DayOfWeek < time.Sunday || r.DayOfWeek > time.Saturday {
		return ErrInvalidDayOfWeek
	}
	if err := r.StartTime.Validate(); err != nil {
		return err
	}
	if err := r.EndTime.Validate(); err != nil {
		return err
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return ErrInvalidTimeRange
	}
	return nil
}
