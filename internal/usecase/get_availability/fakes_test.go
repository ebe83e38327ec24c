package get_availability

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/absence"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

var errStorage = errors.New("storage is down")

type fakeDoctors struct {
	byID map[int64]*domain.Doctor
	err  error
}

func (f *fakeDoctors) GetByID(_ context.Context, id int64) (*domain.Doctor, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.byID[id]
	if !ok {
		return nil, doctorRepo.ErrDoctorNotFound
	}
	return d, nil
}

type fakeAbsences struct {
	items []*domain.AbsencePeriod
	err   error
}

func (f *fakeAbsences) FindCovering(_ context.Context, doctorID int64, day time.Time) (*domain.AbsencePeriod, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.items {
		if a.DoctorID == doctorID && a.Covers(day) {
			return a, nil
		}
	}
	return nil, absenceRepo.ErrAbsenceNotFound
}

type fakeSchedules struct {
	rules []*domain.WeeklyScheduleRule
	err   error
}

func (f *fakeSchedules) GetByDoctorAndDay(_ context.Context, doctorID int64, day time.Weekday) ([]*domain.WeeklyScheduleRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.WeeklyScheduleRule, 0)
	for _, r := range f.rules {
		if r.DoctorID == doctorID && r.DayOfWeek == day {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

type fakeAppointments struct {
	items      []*domain.Appointment
	err        error
	lastFilter domain.AppointmentsFilter
}

func (f *fakeAppointments) GetWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range f.items {
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.From != nil && a.ScheduledAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.ScheduledAt.Before(*filter.To) {
			continue
		}
		if !filter.IncludeCancelled && a.Status == domain.StatusCancelled {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

type fakeMetrics struct {
	outcomes []string
}

func (f *fakeMetrics) RecordAvailability(outcome string) {
	f.outcomes = append(f.outcomes, outcome)
}

var nopLogger = logger.NewNop()
