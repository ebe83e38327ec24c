package create_absence

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/absences/models"
)

type AbsenceService interface {
	Create(ctx context.Context, doctorID int64, req *models.CreateAbsenceRequest, caller domain.Caller) (*models.AbsenceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
