package absences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	absenceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/absence"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/internal/service/absences/models"
)

// Service сервис периодов отсутствия врачей
type Service struct {
	absenceRepo AbsenceRepository
	doctorRepo  DoctorRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отсутствий
func NewService(absenceRepo AbsenceRepository, doctorRepo DoctorRepository, logger Logger) *Service {
	return &Service{
		absenceRepo: absenceRepo,
		doctorRepo:  doctorRepo,
		logger:      logger,
	}
}

// Create создает период отсутствия. Доступно только администратору.
// Пересечения с другими периодами того же врача допускаются.
func (s *Service) Create(ctx context.Context, doctorID int64, req *models.CreateAbsenceRequest, caller domain.Caller) (*models.AbsenceResponse, error) {
	s.logger.Info("Create: absence for doctor=%d from %s to %s by user=%d", doctorID, req.StartDate, req.EndDate, caller.UserID)

	absence, err := parseCreateRequest(doctorID, req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if !caller.IsAdmin() {
		s.logger.Warn("Create: access denied for user=%d", caller.UserID)
		return nil, ErrAccessDenied
	}

	if err := s.ensureDoctor(ctx, "Create", doctorID); err != nil {
		return nil, err
	}

	created, err := s.absenceRepo.Create(ctx, absence)
	if err != nil {
		s.logger.Error("Create: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: absence id=%d created for doctor=%d", created.ID, doctorID)
	return models.FromDomainAbsence(created), nil
}

// ListByDoctor возвращает периоды отсутствия врача
func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) (*models.AbsenceListResponse, error) {
	if err := s.ensureDoctor(ctx, "ListByDoctor", doctorID); err != nil {
		return nil, err
	}

	absences, err := s.absenceRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("ListByDoctor: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: ListByDoctor - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAbsenceList(absences), nil
}

// Delete удаляет период отсутствия. Доступно только администратору.
func (s *Service) Delete(ctx context.Context, id int64, caller domain.Caller) error {
	s.logger.Info("Delete: absence id=%d by user=%d", id, caller.UserID)

	if !caller.IsAdmin() {
		s.logger.Warn("Delete: access denied for user=%d", caller.UserID)
		return ErrAccessDenied
	}

	if err := s.absenceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, absenceRepo.ErrAbsenceNotFound) {
			return ErrAbsenceNotFound
		}
		s.logger.Error("Delete: repository error for absence id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) ensureDoctor(ctx context.Context, op string, doctorID int64) error {
	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("%s: doctor id=%d not found", op, doctorID)
			return ErrDoctorNotFound
		}
		s.logger.Error("%s: failed to get doctor id=%d: %v", op, doctorID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

func parseCreateRequest(doctorID int64, req *models.CreateAbsenceRequest) (*domain.AbsencePeriod, error) {
	start, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.StartDate))
	if err != nil {
		return nil, fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrInvalidInput)
	}

	end, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.EndDate))
	if err != nil {
		return nil, fmt.Errorf("%w: endDate must be YYYY-MM-DD", ErrInvalidInput)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > domain.MaxAbsenceReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxAbsenceReasonLength)
	}

	absence := &domain.AbsencePeriod{
		DoctorID:  doctorID,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
	}
	if err := absence.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return absence, nil
}
