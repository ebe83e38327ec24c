package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/absence"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// UseCase use case расчета свободных слотов врача на дату
type UseCase struct {
	doctorRepo      DoctorRepository
	absenceRepo     AbsenceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	settings        Settings
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctorRepo DoctorRepository,
	absenceRepo AbsenceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	settings Settings,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if settings.SlotDurationMinutes <= 0 {
		settings.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}

	return &UseCase{
		doctorRepo:      doctorRepo,
		absenceRepo:     absenceRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		settings:        settings,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет расчет доступности.
// Блокировка дня (отсутствие, нерабочий день) возвращается в Response, а не ошибкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	day := startOfDay(req.Date, uc.settings.Location)
	uc.logger.Info("GetAvailability: doctor=%d, date=%s", req.DoctorID, day.Format(domain.DateFormat))

	// 2. Проверяем существование врача
	if _, err := uc.doctorRepo.GetByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("GetAvailability: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("GetAvailability: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	response := &Response{DoctorID: req.DoctorID, Date: day}

	// 3. Отсутствие врача имеет приоритет над расписанием
	absence, err := uc.absenceRepo.FindCovering(ctx, req.DoctorID, day)
	if err != nil && !errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
		uc.logger.Error("GetAvailability: failed to find absence: %v", err)
		return nil, fmt.Errorf("%w: failed to find absence: %v", ErrInternal, err)
	}
	if absence != nil {
		uc.logger.Info("GetAvailability: doctor=%d is absent on %s (absence id=%d)",
			req.DoctorID, day.Format(domain.DateFormat), absence.ID)
		uc.metrics.RecordAvailability(metrics.AvailabilityOutcomeAbsence)
		response.Blocked = &domain.DayBlock{Reason: domain.BlockReasonAbsence, Message: absence.Reason}
		return response, nil
	}

	// 4. Правила расписания на день недели
	rules, err := uc.scheduleRepo.GetByDoctorAndDay(ctx, req.DoctorID, day.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	if len(rules) == 0 {
		uc.logger.Info("GetAvailability: doctor=%d does not work on %s", req.DoctorID, day.Weekday())
		uc.metrics.RecordAvailability(metrics.AvailabilityOutcomeNonWorkingDay)
		response.Blocked = &domain.DayBlock{Reason: domain.BlockReasonNonWorkingDay}
		return response, nil
	}

	// 5. Активные записи за сутки [00:00, 24:00) по времени клиники
	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, domain.AppointmentsFilter{
		DoctorID: ptr.Ptr(req.DoctorID),
		From:     ptr.Ptr(day),
		To:       ptr.Ptr(day.AddDate(0, 0, 1)),
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Генерация слотов
	response.Slots = generateSlots(rules, uc.settings.SlotDurationMinutes, busyTimes(appointments, uc.settings.Location))
	uc.metrics.RecordAvailability(metrics.AvailabilityOutcomeSlots)

	uc.logger.Info("GetAvailability: doctor=%d, date=%s, rules=%d, busy=%d, free=%d",
		req.DoctorID, day.Format(domain.DateFormat), len(rules), len(appointments), len(response.Slots))

	return response, nil
}
