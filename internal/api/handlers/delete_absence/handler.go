package delete_absence

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/absences"
)

const (
	msgInvalidAbsenceID = "некорректный ID отсутствия"
	msgMissingCaller    = "требуется авторизация"
	msgForbidden        = "только администратор может удалять отсутствия"
	msgNotFound         = "период отсутствия не найден"
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

// Handle DELETE /api/v1/absences/{absenceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	absenceID, err := handlers.PathID(r, "absenceId")
	if err != nil {
		h.logger.Warn("DELETE /absences/{id} - Invalid absence ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		h.logger.Warn("DELETE /absences/{id} - Missing caller")
		handlers.RespondUnauthorized(w, msgMissingCaller)
		return
	}

	if err := h.service.Delete(r.Context(), absenceID, caller); err != nil {
		switch {
		case errors.Is(err, absences.ErrAccessDenied):
			h.logger.Warn("DELETE /absences/{id} - Access denied: absence_id=%d, user_id=%d", absenceID, caller.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, absences.ErrAbsenceNotFound):
			h.logger.Warn("DELETE /absences/{id} - Absence not found: absence_id=%d", absenceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /absences/{id} - Failed to delete absence: absence_id=%d, error=%v", absenceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /absences/{id} - Absence deleted: absence_id=%d, user_id=%d", absenceID, caller.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
