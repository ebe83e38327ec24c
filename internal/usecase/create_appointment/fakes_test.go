package create_appointment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	patientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/patient"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

var errStorage = errors.New("storage is down")

// fakeAppointments эмулирует частичный уникальный индекс (doctor_id, scheduled_at) для активных записей
type fakeAppointments struct {
	mu        sync.Mutex
	items     []*domain.Appointment
	createErr error
	// skipPrecheck заставляет FindActiveAt ничего не находить, как при гонке двух транзакций
	skipPrecheck bool
}

func (f *fakeAppointments) FindActiveAt(_ context.Context, doctorID int64, at time.Time) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.skipPrecheck {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	for _, a := range f.items {
		if a.DoctorID == doctorID && a.ScheduledAt.Equal(at) && a.IsActive() {
			return a, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeAppointments) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, a := range f.items {
		if a.DoctorID == appointment.DoctorID && a.ScheduledAt.Equal(appointment.ScheduledAt) && a.IsActive() {
			return nil, appointmentRepo.ErrSlotTaken
		}
	}

	appointment.ID = int64(len(f.items) + 1)
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	f.items = append(f.items, appointment)
	return appointment, nil
}

func (f *fakeAppointments) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

type fakeDoctors map[int64]*domain.Doctor

func (f fakeDoctors) GetByID(_ context.Context, id int64) (*domain.Doctor, error) {
	if d, ok := f[id]; ok {
		return d, nil
	}
	return nil, doctorRepo.ErrDoctorNotFound
}

type fakePatients map[int64]*domain.Patient

func (f fakePatients) GetByID(_ context.Context, id int64) (*domain.Patient, error) {
	if p, ok := f[id]; ok {
		return p, nil
	}
	return nil, patientRepo.ErrPatientNotFound
}

// passThroughTx выполняет fn без транзакции
type passThroughTx struct {
	commitErr error
}

func (p *passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return p.commitErr
}

type busyLocker struct{}

func (busyLocker) WithSlotLock(_ context.Context, _ int64, _ time.Time, _ func(ctx context.Context) error) error {
	return errLockBusy
}

type brokenLocker struct{}

func (brokenLocker) WithSlotLock(_ context.Context, _ int64, _ time.Time, _ func(ctx context.Context) error) error {
	return errors.New("acquire slot lock: dial tcp: connection refused")
}

type fakeMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{conflicts: make(map[string]int)}
}

func (f *fakeMetrics) RecordAppointmentCreated() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
}

func (f *fakeMetrics) RecordBookingConflict(stage string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflicts[stage]++
}

var nopLogger = logger.NewNop()
