package replace_schedule

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DoctorRepository интерфейс справочника врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	// GetByUserID находит профиль врача, принадлежащий учетной записи
	GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
}

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	DeleteByDoctor(ctx context.Context, doctorID int64) (int64, error)
	CreateMany(ctx context.Context, rules []*domain.WeeklyScheduleRule) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик
type Metrics interface {
	RecordScheduleReplaced()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
