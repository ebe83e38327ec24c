package replace_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
)

// UseCase use case полной замены недельного расписания врача
type UseCase struct {
	doctorRepo   DoctorRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	doctorRepo DoctorRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		doctorRepo:   doctorRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute удаляет все правила врача и сохраняет новые в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReplaceSchedule: caller=%d (%s), doctor=%d, rules=%d",
		req.Caller.UserID, req.Caller.Role, req.DoctorID, len(req.Rules))

	// 1. Валидация входных данных
	rules, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ReplaceSchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка прав
	if err := uc.authorize(ctx, req.Caller, req.DoctorID); err != nil {
		return nil, err
	}

	// 3. Проверяем существование врача
	if _, err := uc.doctorRepo.GetByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			uc.logger.Warn("ReplaceSchedule: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("ReplaceSchedule: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 4. Удаление и вставка атомарно: пустое расписание между ними не видно
	var deleted int64
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		n, err := uc.scheduleRepo.DeleteByDoctor(txCtx, req.DoctorID)
		if err != nil {
			return fmt.Errorf("%w: failed to delete rules: %v", ErrInternal, err)
		}
		deleted = n

		if err := uc.scheduleRepo.CreateMany(txCtx, rules); err != nil {
			return fmt.Errorf("%w: failed to create rules: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("ReplaceSchedule: doctor=%d: %v", req.DoctorID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.RecordScheduleReplaced()
	uc.logger.Info("ReplaceSchedule: doctor=%d, deleted=%d, created=%d", req.DoctorID, deleted, len(rules))

	return &Response{DoctorID: req.DoctorID, Deleted: deleted, Created: len(rules)}, nil
}

// authorize: администратор меняет любое расписание, врач только свое, пациент никакое
func (uc *UseCase) authorize(ctx context.Context, caller domain.Caller, doctorID int64) error {
	switch caller.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleDoctor:
		own, err := uc.doctorRepo.GetByUserID(ctx, caller.UserID)
		if err != nil {
			if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
				uc.logger.Warn("ReplaceSchedule: user=%d has no doctor profile", caller.UserID)
				return ErrAccessDenied
			}
			uc.logger.Error("ReplaceSchedule: failed to resolve doctor for user=%d: %v", caller.UserID, err)
			return fmt.Errorf("%w: failed to resolve doctor: %v", ErrInternal, err)
		}
		if own.ID != doctorID {
			uc.logger.Warn("ReplaceSchedule: doctor=%d tried to edit schedule of doctor=%d", own.ID, doctorID)
			return ErrAccessDenied
		}
		return nil
	default:
		uc.logger.Warn("ReplaceSchedule: user=%d with role %s is not allowed", caller.UserID, caller.Role)
		return ErrAccessDenied
	}
}
