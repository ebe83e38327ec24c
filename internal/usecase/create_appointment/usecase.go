package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	patientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/patient"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/slotlock"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case создания записи на прием
type UseCase struct {
	appointmentRepo AppointmentRepository
	doctorRepo      DoctorRepository
	patientRepo     PatientRepository
	txManager       TransactionManager
	locker          SlotLocker
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	patientRepo PatientRepository,
	txManager TransactionManager,
	locker SlotLocker,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		txManager:       txManager,
		locker:          locker,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости слота и вставка выполняются в сериализуемой транзакции;
// окончательную гарантию дает частичный уникальный индекс (doctor_id, scheduled_at).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: caller=%d (%s), patient=%d, doctor=%d, at=%s",
		req.Caller.UserID, req.Caller.Role, req.PatientID, req.DoctorID, req.ScheduledAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка прав
	if err := authorize(req.Caller, req.PatientID); err != nil {
		uc.logger.Warn("CreateAppointment: user=%d tried to book for patient=%d", req.Caller.UserID, req.PatientID)
		return nil, err
	}

	// 3. Проверяем существование врача и пациента
	if _, err := uc.doctorRepo.GetByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("CreateAppointment: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	if _, err := uc.patientRepo.GetByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			uc.logger.Warn("CreateAppointment: patient id=%d not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}

	// 4. Критическая секция под блокировкой слота
	var result *domain.Appointment
	book := func(lockCtx context.Context) error {
		created, err := uc.book(lockCtx, req)
		if err != nil {
			return err
		}
		result = created
		return nil
	}

	entered := false
	err := uc.locker.WithSlotLock(ctx, req.DoctorID, req.ScheduledAt, func(lockCtx context.Context) error {
		entered = true
		return book(lockCtx)
	})

	switch {
	case err == nil:
	case errors.Is(err, slotlock.ErrLockNotAcquired):
		uc.logger.Warn("CreateAppointment: slot doctor=%d at=%s is being booked concurrently",
			req.DoctorID, req.ScheduledAt.Format(domain.DateTimeFormat))
		uc.metrics.RecordBookingConflict(metrics.ConflictStageLock)
		return nil, ErrSlotNotAvailable
	case !entered:
		// Хранилище блокировок недоступно: уникальный индекс по-прежнему защищает от дублей
		uc.logger.Warn("CreateAppointment: slot lock unavailable, booking without it: %v", err)
		if err := book(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	uc.metrics.RecordAppointmentCreated()
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		PatientID:   result.PatientID,
		DoctorID:    result.DoctorID,
		ScheduledAt: result.ScheduledAt,
		Status:      string(result.Status),
		Notes:       result.Notes,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// book проверяет слот и создает запись в сериализуемой транзакции
func (uc *UseCase) book(ctx context.Context, req *Request) (*domain.Appointment, error) {
	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Быстрая проверка для понятной ошибки
		existing, err := uc.appointmentRepo.FindActiveAt(txCtx, req.DoctorID, req.ScheduledAt)
		switch {
		case err == nil:
			uc.logger.Warn("CreateAppointment: doctor=%d already has appointment id=%d at %s",
				req.DoctorID, existing.ID, req.ScheduledAt.Format(domain.DateTimeFormat))
			uc.metrics.RecordBookingConflict(metrics.ConflictStagePrecheck)
			return ErrSlotNotAvailable
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		case errors.Is(err, appointmentRepo.ErrSerialization):
			return uc.constraintConflict(err)
		default:
			uc.logger.Error("CreateAppointment: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		// 4.2. Вставка; проигравший гонку получит нарушение уникальности
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			PatientID:   req.PatientID,
			DoctorID:    req.DoctorID,
			ScheduledAt: req.ScheduledAt,
			Status:      domain.StatusPending,
			Notes:       domain.NormalizeNotes(req.Notes),
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) || errors.Is(err, appointmentRepo.ErrSerialization) {
				return uc.constraintConflict(err)
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			return nil, uc.constraintConflict(err)
		}
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	return result, nil
}

func (uc *UseCase) constraintConflict(cause error) error {
	uc.logger.Warn("CreateAppointment: concurrent booking rejected by storage: %v", cause)
	uc.metrics.RecordBookingConflict(metrics.ConflictStageConstraint)
	return ErrSlotNotAvailable
}
