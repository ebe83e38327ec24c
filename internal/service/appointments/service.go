package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	doctorRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/doctor"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

// Service сервис чтения записей и переходов статуса
type Service struct {
	appointmentRepo AppointmentRepository
	doctorRepo      DoctorRepository
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	doctorRepo DoctorRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		location:        location,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Видят запись администратор, пациент-владелец и врач, к которому запись
func (s *Service) GetByID(ctx context.Context, id int64, caller domain.Caller) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, caller.UserID)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, appointment, caller, true); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", caller.UserID, id)
		return nil, err
	}

	return models.FromDomainAppointment(appointment, s.location), nil
}

// GetPatientAppointments получает записи пациента (сам пациент или администратор)
func (s *Service) GetPatientAppointments(ctx context.Context, patientID int64, status *string, caller domain.Caller) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetPatientAppointments: patient=%d, user=%d", patientID, caller.UserID)

	if !caller.IsAdmin() && !(caller.Role == domain.RolePatient && caller.UserID == patientID) {
		s.logger.Warn("GetPatientAppointments: access denied for user=%d to patient=%d", caller.UserID, patientID)
		return nil, ErrAccessDenied
	}

	filter := domain.AppointmentsFilter{PatientID: ptr.Ptr(patientID), IncludeCancelled: true}
	if status != nil {
		parsed, err := domain.ParseAppointmentStatus(*status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *status)
		}
		filter.Status = &parsed
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPatientAppointments: repository error for patient=%d: %v", patientID, err)
		return nil, fmt.Errorf("%w: GetPatientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientAppointments: fetched %d appointments for patient=%d", len(appointments), patientID)
	return models.FromDomainAppointmentList(appointments, s.location), nil
}

// GetDoctorAppointments получает записи врача, опционально за одну дату
// Доступно администратору и самому врачу
func (s *Service) GetDoctorAppointments(ctx context.Context, req *models.GetDoctorAppointmentsRequest, caller domain.Caller) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetDoctorAppointments: doctor=%d, user=%d", req.DoctorID, caller.UserID)

	if _, err := s.doctorRepo.GetByID(ctx, req.DoctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("GetDoctorAppointments: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorAppointments - repository error: %v", ErrInternal, err)
	}

	if !caller.IsAdmin() {
		owns, err := s.isOwningDoctor(ctx, caller, req.DoctorID)
		if err != nil {
			return nil, err
		}
		if !owns {
			s.logger.Warn("GetDoctorAppointments: access denied for user=%d to doctor=%d", caller.UserID, req.DoctorID)
			return nil, ErrAccessDenied
		}
	}

	filter := domain.AppointmentsFilter{DoctorID: ptr.Ptr(req.DoctorID), IncludeCancelled: req.IncludeCancelled}
	if req.Date != nil {
		from := s.startOfDay(*req.Date)
		filter.From = ptr.Ptr(from)
		filter.To = ptr.Ptr(from.AddDate(0, 0, 1))
	}
	if req.Status != nil {
		parsed, err := domain.ParseAppointmentStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &parsed
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetDoctorAppointments: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorAppointments - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments, s.location), nil
}

// GetAppointments получает все записи клиники, новые сверху (только администратор).
// Отмененные записи входят в список, если не задан фильтр по статусу.
func (s *Service) GetAppointments(ctx context.Context, req *models.GetAppointmentsRequest, caller domain.Caller) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetAppointments: user=%d", caller.UserID)

	if !caller.IsAdmin() {
		s.logger.Warn("GetAppointments: access denied for user=%d", caller.UserID)
		return nil, ErrAccessDenied
	}

	filter := domain.AppointmentsFilter{IncludeCancelled: true, NewestFirst: true}

	if req.DateFrom != nil {
		filter.From = ptr.Ptr(s.startOfDay(*req.DateFrom))
	}
	if req.DateTo != nil {
		filter.To = ptr.Ptr(s.startOfDay(*req.DateTo).AddDate(0, 0, 1))
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	if req.Status != nil {
		parsed, err := domain.ParseAppointmentStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &parsed
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAppointments: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments, s.location), nil
}

// UpdateNotes меняет комментарий к записи (администратор, врач-владелец или пациент-владелец).
// Пустой комментарий удаляется; время и статус записи не меняются.
func (s *Service) UpdateNotes(ctx context.Context, id int64, req *models.UpdateNotesRequest, caller domain.Caller) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateNotes: appointment id=%d by user=%d", id, caller.UserID)

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	appointment, err := s.getAppointment(ctx, "UpdateNotes", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, appointment, caller, true); err != nil {
		s.logger.Warn("UpdateNotes: access denied for user=%d to appointment id=%d", caller.UserID, id)
		return nil, err
	}

	notes := domain.NormalizeNotes(req.Notes)
	if err := s.appointmentRepo.UpdateNotes(ctx, id, notes); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateNotes: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateNotes - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateNotes: appointment id=%d notes updated", id)

	appointment.Notes = notes
	appointment.UpdatedAt = time.Now()
	return models.FromDomainAppointment(appointment, s.location), nil
}

// UpdateStatus подтверждает или завершает запись (администратор или врач-владелец)
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest, caller domain.Caller) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d to status=%s by user=%d", id, req.Status, caller.UserID)

	next, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil || (next != domain.StatusConfirmed && next != domain.StatusCompleted) {
		s.logger.Warn("UpdateStatus: unsupported status=%q", req.Status)
		return nil, fmt.Errorf("%w: status must be CONFIRMED or COMPLETED", ErrInvalidInput)
	}

	return s.transition(ctx, "UpdateStatus", id, next, caller, false)
}

// Cancel отменяет запись (администратор, врач-владелец или пациент-владелец)
func (s *Service) Cancel(ctx context.Context, id int64, caller domain.Caller) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: appointment id=%d by user=%d", id, caller.UserID)

	return s.transition(ctx, "Cancel", id, domain.StatusCancelled, caller, true)
}

func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	next domain.AppointmentStatus,
	caller domain.Caller,
	patientAllowed bool,
) (*models.AppointmentResponse, error) {
	appointment, err := s.getAppointment(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, appointment, caller, patientAllowed); err != nil {
		s.logger.Warn("%s: access denied for user=%d to appointment id=%d", op, caller.UserID, id)
		return nil, err
	}

	if !appointment.CanTransitionTo(next) {
		s.logger.Warn("%s: appointment id=%d cannot move from %s to %s", op, id, appointment.Status, next)
		return nil, ErrInvalidTransition
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, appointment.Status, next); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			s.logger.Warn("%s: appointment id=%d status changed concurrently", op, id)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: appointment id=%d moved from %s to %s", op, id, appointment.Status, next)

	appointment.Status = next
	appointment.UpdatedAt = time.Now()
	return models.FromDomainAppointment(appointment, s.location), nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

// checkAccess: администратор всегда, врач к своим записям, пациент к своим при patientAllowed
func (s *Service) checkAccess(ctx context.Context, appointment *domain.Appointment, caller domain.Caller, patientAllowed bool) error {
	switch caller.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RolePatient:
		if patientAllowed && appointment.PatientID == caller.UserID {
			return nil
		}
		return ErrAccessDenied
	case domain.RoleDoctor:
		owns, err := s.isOwningDoctor(ctx, caller, appointment.DoctorID)
		if err != nil {
			return err
		}
		if owns {
			return nil
		}
		return ErrAccessDenied
	default:
		return ErrAccessDenied
	}
}

func (s *Service) isOwningDoctor(ctx context.Context, caller domain.Caller, doctorID int64) (bool, error) {
	if caller.Role != domain.RoleDoctor {
		return false, nil
	}

	doctor, err := s.doctorRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return false, nil
		}
		s.logger.Error("isOwningDoctor: failed to resolve doctor for user=%d: %v", caller.UserID, err)
		return false, fmt.Errorf("%w: resolve doctor: %v", ErrInternal, err)
	}

	return doctor.ID == doctorID, nil
}

// startOfDay полночь календарной даты date по времени клиники
func (s *Service) startOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}
