package replace_schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	doctorID     int64 = 3
	doctorUserID int64 = 100
	otherDoctor  int64 = 4
)

type fakeDoctors struct{}

func (fakeDoctors) GetByID(_ context.Context, id int64) (*domain.Doctor, error) {
	switch id {
	case doctorID:
		return &domain.Doctor{ID: doctorID, UserID: doctorUserID}, nil
	case otherDoctor:
		return &domain.Doctor{ID: otherDoctor, UserID: 200}, nil
	}
	return nil, doctorRepo.ErrDoctorNotFound
}

func (fakeDoctors) GetByUserID(_ context.Context, userID int64) (*domain.Doctor, error) {
	switch userID {
	case doctorUserID:
		return &domain.Doctor{ID: doctorID, UserID: doctorUserID}, nil
	case 200:
		return &domain.Doctor{ID: otherDoctor, UserID: 200}, nil
	}
	return nil, doctorRepo.ErrDoctorNotFound
}

type fakeSchedules struct {
	rules     []*domain.WeeklyScheduleRule
	createErr error
}

func (f *fakeSchedules) DeleteByDoctor(_ context.Context, id int64) (int64, error) {
	kept := make([]*domain.WeeklyScheduleRule, 0, len(f.rules))
	var deleted int64
	for _, r := range f.rules {
		if r.DoctorID == id {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.rules = kept
	return deleted, nil
}

func (f *fakeSchedules) CreateMany(_ context.Context, rules []*domain.WeeklyScheduleRule) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rules = append(f.rules, rules...)
	return nil
}

func (f *fakeSchedules) forDoctor(id int64) []*domain.WeeklyScheduleRule {
	result := make([]*domain.WeeklyScheduleRule, 0)
	for _, r := range f.rules {
		if r.DoctorID == id {
			result = append(result, r)
		}
	}
	return result
}

// snapshotTx откатывает состояние репозитория, если fn вернула ошибку
type snapshotTx struct {
	repo *fakeSchedules
}

func (s *snapshotTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := append([]*domain.WeeklyScheduleRule(nil), s.repo.rules...)
	if err := fn(ctx); err != nil {
		s.repo.rules = snapshot
		return err
	}
	return nil
}

type fakeMetrics struct{ replaced int }

func (f *fakeMetrics) RecordScheduleReplaced() { f.replaced++ }

func newUseCase(repo *fakeSchedules, m *fakeMetrics) *UseCase {
	return NewUseCase(fakeDoctors{}, repo, &snapshotTx{repo: repo}, m, logger.NewNop())
}

func existingSchedule() *fakeSchedules {
	return &fakeSchedules{rules: []*domain.WeeklyScheduleRule{
		{DoctorID: doctorID, DayOfWeek: time.Monday, StartTime: "08:00", EndTime: "12:00"},
		{DoctorID: doctorID, DayOfWeek: time.Friday, StartTime: "08:00", EndTime: "12:00"},
		{DoctorID: otherDoctor, DayOfWeek: time.Monday, StartTime: "10:00", EndTime: "18:00"},
	}}
}

func TestUseCase_Execute_ReplacesWholeSchedule(t *testing.T) {
	repo := existingSchedule()
	m := &fakeMetrics{}

	resp, err := newUseCase(repo, m).Execute(context.Background(), &Request{
		Caller:   domain.Caller{UserID: doctorUserID, Role: domain.RoleDoctor},
		DoctorID: doctorID,
		Rules: []Rule{
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "13:00"},
			{DayOfWeek: 2, StartTime: "15:00", EndTime: "19:00"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)
	assert.Equal(t, 2, resp.Created)

	rules := repo.forDoctor(doctorID)
	require.Len(t, rules, 2)
	assert.Equal(t, time.Tuesday, rules[0].DayOfWeek)
	assert.Equal(t, types.TimeString("15:00"), rules[1].StartTime)
	assert.Len(t, repo.forDoctor(otherDoctor), 1)
	assert.Equal(t, 1, m.replaced)
}

func TestUseCase_Execute_EmptyRulesClearSchedule(t *testing.T) {
	repo := existingSchedule()

	resp, err := newUseCase(repo, &fakeMetrics{}).Execute(context.Background(), &Request{
		Caller:   domain.Caller{UserID: 1, Role: domain.RoleAdmin},
		DoctorID: doctorID,
		Rules:    nil,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Empty(t, repo.forDoctor(doctorID))
}

func TestUseCase_Execute_FailedInsertKeepsOldSchedule(t *testing.T) {
	repo := existingSchedule()
	repo.createErr = errors.New("connection reset")
	m := &fakeMetrics{}

	_, err := newUseCase(repo, m).Execute(context.Background(), &Request{
		Caller:   domain.Caller{UserID: 1, Role: domain.RoleAdmin},
		DoctorID: doctorID,
		Rules:    []Rule{{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}},
	})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Len(t, repo.forDoctor(doctorID), 2)
	assert.Zero(t, m.replaced)
}

func TestUseCase_Execute_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		caller  domain.Caller
		target  int64
		wantErr error
	}{
		{name: "admin edits any doctor", caller: domain.Caller{UserID: 1, Role: domain.RoleAdmin}, target: otherDoctor},
		{name: "doctor edits own schedule", caller: domain.Caller{UserID: doctorUserID, Role: domain.RoleDoctor}, target: doctorID},
		{name: "doctor edits someone else", caller: domain.Caller{UserID: doctorUserID, Role: domain.RoleDoctor}, target: otherDoctor, wantErr: ErrAccessDenied},
		{name: "doctor account without profile", caller: domain.Caller{UserID: 999, Role: domain.RoleDoctor}, target: doctorID, wantErr: ErrAccessDenied},
		{name: "patient is never allowed", caller: domain.Caller{UserID: 7, Role: domain.RolePatient}, target: doctorID, wantErr: ErrAccessDenied},
		{name: "admin targets unknown doctor", caller: domain.Caller{UserID: 1, Role: domain.RoleAdmin}, target: 404, wantErr: ErrDoctorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := existingSchedule()

			_, err := newUseCase(repo, &fakeMetrics{}).Execute(context.Background(), &Request{
				Caller:   tt.caller,
				DoctorID: tt.target,
				Rules:    []Rule{{DayOfWeek: 3, StartTime: "09:00", EndTime: "10:00"}},
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, repo.rules, 3, "schedule must stay untouched")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{name: "day below range", rule: Rule{DayOfWeek: -1, StartTime: "09:00", EndTime: "10:00"}},
		{name: "day above range", rule: Rule{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}},
		{name: "start equals end", rule: Rule{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}},
		{name: "start after end", rule: Rule{DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00"}},
		{name: "bad time format", rule: Rule{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00"}},
		{name: "missing end", rule: Rule{DayOfWeek: 1, StartTime: "09:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := existingSchedule()

			// Валидация идет раньше проверки прав: даже пациент получает ошибку входных данных
			_, err := newUseCase(repo, &fakeMetrics{}).Execute(context.Background(), &Request{
				Caller:   domain.Caller{UserID: 7, Role: domain.RolePatient},
				DoctorID: doctorID,
				Rules:    []Rule{tt.rule},
			})

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Len(t, repo.rules, 3)
		})
	}
}
