package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const doctorID int64 = 3

var facility = time.FixedZone("ART", -3*60*60)

type fixture struct {
	absences     *fakeAbsences
	schedules    *fakeSchedules
	appointments *fakeAppointments
	metrics      *fakeMetrics
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		absences:     &fakeAbsences{},
		schedules:    &fakeSchedules{},
		appointments: &fakeAppointments{},
		metrics:      &fakeMetrics{},
	}
	doctors := &fakeDoctors{byID: map[int64]*domain.Doctor{doctorID: {ID: doctorID, Name: "Dra. Gómez"}}}

	f.uc = NewUseCase(doctors, f.absences, f.schedules, f.appointments,
		Settings{SlotDurationMinutes: 30, Location: facility}, f.metrics, nopLogger)
	return f
}

func (f *fixture) addRule(day time.Weekday, start, end types.TimeString) {
	f.schedules.rules = append(f.schedules.rules, &domain.WeeklyScheduleRule{
		DoctorID: doctorID, DayOfWeek: day, StartTime: start, EndTime: end,
	})
}

func (f *fixture) addAppointment(at time.Time, status domain.AppointmentStatus) {
	f.appointments.items = append(f.appointments.items, &domain.Appointment{
		ID: int64(len(f.appointments.items) + 1), DoctorID: doctorID, PatientID: 7, ScheduledAt: at, Status: status,
	})
}

// monday 2025-03-10 по времени клиники
func monday() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, facility)
}

func TestUseCase_Execute_MorningShift(t *testing.T) {
	f := newFixture()
	f.addRule(time.Monday, "09:00", "13:00")

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})

	require.NoError(t, err)
	assert.False(t, resp.IsBlocked())
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30"}, resp.Slots)
	assert.Equal(t, []string{metrics.AvailabilityOutcomeSlots}, f.metrics.outcomes)
}

func TestUseCase_Execute_BusySlots(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.AppointmentStatus
		wantHas bool
	}{
		{name: "confirmed appointment takes the slot", status: domain.StatusConfirmed, wantHas: false},
		{name: "pending appointment takes the slot", status: domain.StatusPending, wantHas: false},
		{name: "cancelled appointment frees the slot", status: domain.StatusCancelled, wantHas: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.addRule(time.Monday, "09:00", "13:00")
			f.addAppointment(time.Date(2025, 3, 10, 10, 0, 0, 0, facility), tt.status)

			resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})

			require.NoError(t, err)
			if tt.wantHas {
				assert.Contains(t, resp.Slots, types.TimeString("10:00"))
				assert.Len(t, resp.Slots, 8)
			} else {
				assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
				assert.Len(t, resp.Slots, 7)
			}
		})
	}
}

func TestUseCase_Execute_AppointmentStoredInUTC(t *testing.T) {
	f := newFixture()
	f.addRule(time.Monday, "09:00", "10:00")
	// 12:30 UTC = 09:30 по времени клиники
	f.addAppointment(time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC), domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00"}, resp.Slots)

	require.NotNil(t, f.appointments.lastFilter.From)
	assert.True(t, f.appointments.lastFilter.From.Equal(monday()))
	assert.True(t, f.appointments.lastFilter.To.Equal(monday().Add(24*time.Hour)))
}

func TestUseCase_Execute_OffGridAppointmentNeverBlocks(t *testing.T) {
	f := newFixture()
	f.addRule(time.Monday, "09:00", "10:00")
	f.addAppointment(time.Date(2025, 3, 10, 9, 15, 0, 0, facility), domain.StatusConfirmed)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.Slots)
}

func TestUseCase_Execute_SplitShiftKeepsRuleOrder(t *testing.T) {
	f := newFixture()
	f.addRule(time.Monday, "14:00", "15:00")
	f.addRule(time.Monday, "08:00", "09:00")
	f.addRule(time.Tuesday, "10:00", "11:00")

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"08:00", "08:30", "14:00", "14:30"}, resp.Slots)
}

func TestUseCase_Execute_RuleEndNotOnGrid(t *testing.T) {
	f := newFixture()
	f.addRule(time.Monday, "09:00", "09:45")

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.Slots)
}

func TestUseCase_Execute_LateRuleStopsAtMidnight(t *testing.T) {
	f := newFixture()
	f.addRule(time.Monday, "23:00", "23:59")

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"23:00", "23:30"}, resp.Slots)
}

func TestUseCase_Execute_AllSlotsTaken(t *testing.T) {
	f := newFixture()
	f.addRule(time.Monday, "09:00", "10:00")
	f.addAppointment(time.Date(2025, 3, 10, 9, 0, 0, 0, facility), domain.StatusConfirmed)
	f.addAppointment(time.Date(2025, 3, 10, 9, 30, 0, 0, facility), domain.StatusPending)

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})

	require.NoError(t, err)
	assert.False(t, resp.IsBlocked())
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_NonWorkingDay(t *testing.T) {
	f := newFixture()
	f.addRule(time.Tuesday, "09:00", "13:00")

	resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})

	require.NoError(t, err)
	require.True(t, resp.IsBlocked())
	assert.Equal(t, domain.BlockReasonNonWorkingDay, resp.Blocked.Reason)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, []string{metrics.AvailabilityOutcomeNonWorkingDay}, f.metrics.outcomes)
}

func TestUseCase_Execute_EveryDayBlockedWithoutRules(t *testing.T) {
	f := newFixture()

	for i := 0; i < 7; i++ {
		resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday().AddDate(0, 0, i)})

		require.NoError(t, err)
		require.True(t, resp.IsBlocked())
		assert.Equal(t, domain.BlockReasonNonWorkingDay, resp.Blocked.Reason)
	}
}

func TestUseCase_Execute_AbsenceWinsOverSchedule(t *testing.T) {
	f := newFixture()
	f.addRule(time.Monday, "09:00", "13:00")
	f.absences.items = append(f.absences.items, &domain.AbsencePeriod{
		ID:        1,
		DoctorID:  doctorID,
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Reason:    "Congreso de cardiología",
	})

	for _, date := range []time.Time{monday(), monday().AddDate(0, 0, 4)} {
		resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: date})

		require.NoError(t, err)
		require.True(t, resp.IsBlocked())
		assert.Equal(t, domain.BlockReasonAbsence, resp.Blocked.Reason)
		assert.Equal(t, "Congreso de cardiología", resp.Blocked.Message)
	}

	// День после отсутствия снова рабочий
	next, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday().AddDate(0, 0, 7)})
	require.NoError(t, err)
	assert.False(t, next.IsBlocked())
}

func TestUseCase_Execute_Errors(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Execute(context.Background(), &Request{DoctorID: 0, Date: monday()})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.uc.Execute(context.Background(), &Request{DoctorID: doctorID})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.Execute(context.Background(), &Request{DoctorID: 404, Date: monday()})
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})

	t.Run("storage failure is internal, not blocked", func(t *testing.T) {
		f := newFixture()
		f.addRule(time.Monday, "09:00", "13:00")
		f.appointments.err = errStorage

		resp, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("absence lookup failure", func(t *testing.T) {
		f := newFixture()
		f.absences.err = errStorage

		_, err := f.uc.Execute(context.Background(), &Request{DoctorID: doctorID, Date: monday()})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
