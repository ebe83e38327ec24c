package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DoctorRepository интерфейс справочника врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
}

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	// FindCovering возвращает период отсутствия, покрывающий календарную дату day
	FindCovering(ctx context.Context, doctorID int64, day time.Time) (*domain.AbsencePeriod, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	// GetByDoctorAndDay возвращает правила на день недели, упорядоченные по времени начала
	GetByDoctorAndDay(ctx context.Context, doctorID int64, day time.Weekday) ([]*domain.WeeklyScheduleRule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Metrics интерфейс метрик
type Metrics interface {
	RecordAvailability(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
