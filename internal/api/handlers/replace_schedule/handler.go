package replace_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	replaceSchedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/replace_schedule"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRules       = "некорректные правила расписания"
	msgMissingCaller      = "требуется авторизация"
	msgForbidden          = "нет прав на изменение расписания этого врача"
	msgDoctorNotFound     = "врач не найден"
)

type Handler struct {
	useCase ReplaceScheduleUseCase
	logger  Logger
}

func NewHandler(useCase ReplaceScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/doctors/{doctorId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, err := handlers.PathID(r, "doctorId")
	if err != nil {
		h.logger.Warn("PUT /doctors/{id}/schedule - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("PUT /doctors/{id}/schedule - Missing caller")
		handlers.RespondUnauthorized(w, msgMissingCaller)
		return
	}

	var req ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctors/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(caller, doctorID))
	if err != nil {
		switch {
		case errors.Is(err, replaceSchedule.ErrInvalidInput):
			h.logger.Warn("PUT /doctors/{id}/schedule - Invalid rules: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidRules)

		case errors.Is(err, replaceSchedule.ErrAccessDenied):
			h.logger.Warn("PUT /doctors/{id}/schedule - Access denied: doctor_id=%d, user_id=%d", doctorID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, replaceSchedule.ErrDoctorNotFound):
			h.logger.Warn("PUT /doctors/{id}/schedule - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("PUT /doctors/{id}/schedule - Failed to replace schedule: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /doctors/{id}/schedule - Schedule replaced: doctor_id=%d, deleted=%d, created=%d, user_id=%d",
		doctorID, result.Deleted, result.Created, caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
