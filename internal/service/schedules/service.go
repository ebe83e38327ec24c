package schedules

import (
	"context"
	"errors"
	"fmt"

	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedules/models"
)

// Service сервис чтения расписания врачей
type Service struct {
	scheduleRepo ScheduleRepository
	doctorRepo   DoctorRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, doctorRepo DoctorRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
		logger:       logger,
	}
}

// GetByDoctor возвращает все правила врача по дню недели и времени начала
func (s *Service) GetByDoctor(ctx context.Context, doctorID int64) (*models.ScheduleResponse, error) {
	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("GetByDoctor: doctor id=%d not found", doctorID)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("GetByDoctor: failed to get doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetByDoctor - repository error: %v", ErrInternal, err)
	}

	rules, err := s.scheduleRepo.GetByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("GetByDoctor: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetByDoctor - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(doctorID, rules), nil
}
