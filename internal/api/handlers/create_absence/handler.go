package create_absence

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/absences"
	"github.com/m04kA/SMC-AppointmentService/internal/service/absences/models"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAbsence     = "некорректный период отсутствия"
	msgMissingCaller      = "требуется авторизация"
	msgForbidden          = "только администратор может добавлять отсутствия"
	msgDoctorNotFound     = "врач не найден"
)

type Handler struct {
	service AbsenceService
	logger  Logger
}

func NewHandler(service AbsenceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/doctors/{doctorId}/absences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathID(r, "doctorId")
	if err != nil {
		h.logger.Warn("POST /doctors/{id}/absences - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("POST /doctors/{id}/absences - Missing caller")
		handlers.RespondUnauthorized(w, msgMissingCaller)
		return
	}

	var req models.CreateAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctors/{id}/absences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	absence, err := h.service.Create(r.Context(), doctorID, &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, absences.ErrInvalidInput):
			h.logger.Warn("POST /doctors/{id}/absences - Invalid absence: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidAbsence)

		case errors.Is(err, absences.ErrAccessDenied):
			h.logger.Warn("POST /doctors/{id}/absences - Access denied: user_id=%d", caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, absences.ErrDoctorNotFound):
			h.logger.Warn("POST /doctors/{id}/absences - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("POST /doctors/{id}/absences - Failed to create absence: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /doctors/{id}/absences - Absence created: absence_id=%d, doctor_id=%d", absence.ID, doctorID)
	handlers.RespondJSON(w, http.StatusCreated, absence)
}
