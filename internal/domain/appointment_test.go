package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppointmentStatus(t *testing.T) {
	status, err := ParseAppointmentStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseAppointmentStatus("NO_SHOW")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestNormalizeNotes(t *testing.T) {
	assert.Nil(t, NormalizeNotes(nil))

	blank := "   "
	assert.Nil(t, NormalizeNotes(&blank))

	padded := "  bring test results \n"
	got := NormalizeNotes(&padded)
	require.NotNil(t, got)
	assert.Equal(t, "bring test results", *got)
}

func TestWeeklyScheduleRule_Validate(t *testing.T) {
	ok := &WeeklyScheduleRule{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "13:00"}
	assert.NoError(t, ok.Validate())

	reversed := &WeeklyScheduleRule{DayOfWeek: time.Monday, StartTime: "13:00", EndTime: "09:00"}
	assert.ErrorIs(t, reversed.Validate(), ErrInvalidTimeRange)

	empty := &WeeklyScheduleRule{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "09:00"}
	assert.ErrorIs(t, empty.Validate(), ErrInvalidTimeRange)

	badDay := &WeeklyScheduleRule{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}
	assert.ErrorIs(t, badDay.Validate(), ErrInvalidDayOfWeek)
}

func TestAbsencePeriod_Covers(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	a := &AbsencePeriod{
		StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, a.Covers(time.Date(2025, 7, 1, 23, 30, 0, 0, loc)))
	assert.True(t, a.Covers(time.Date(2025, 7, 15, 8, 0, 0, 0, loc)))
	assert.False(t, a.Covers(time.Date(2025, 7, 16, 0, 0, 0, 0, loc)))
	assert.False(t, a.Covers(time.Date(2025, 6, 30, 23, 59, 0, 0, loc)))

	inverted := &AbsencePeriod{StartDate: a.EndDate, EndDate: a.StartDate}
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidDateRange)
}
