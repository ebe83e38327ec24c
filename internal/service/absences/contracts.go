package absences

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	Create(ctx context.Context, absence *domain.AbsencePeriod) (*domain.AbsencePeriod, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*domain.AbsencePeriod, error)
	Delete(ctx context.Context, id int64) error
}

// DoctorRepository интерфейс справочника врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
