package get_absences

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/absences/models"
)

type AbsenceService interface {
	ListByDoctor(ctx context.Context, doctorID int64) (*models.AbsenceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
